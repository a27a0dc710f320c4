package emu

import "github.com/sarchlab/a32sim/insts"

// ConditionPassed evaluates an A32 condition code against the CPSR flags.
// NV is treated like AL.
func (r *RegFile) ConditionPassed(cond insts.Cond) bool {
	n, z, c, v := r.N(), r.Z(), r.C(), r.V()

	switch cond {
	case insts.CondEQ:
		return z
	case insts.CondNE:
		return !z
	case insts.CondCS:
		return c
	case insts.CondCC:
		return !c
	case insts.CondMI:
		return n
	case insts.CondPL:
		return !n
	case insts.CondVS:
		return v
	case insts.CondVC:
		return !v
	case insts.CondHI:
		return c && !z
	case insts.CondLS:
		return !c || z
	case insts.CondGE:
		return n == v
	case insts.CondLT:
		return n != v
	case insts.CondGT:
		return !z && n == v
	case insts.CondLE:
		return z || n != v
	case insts.CondAL, insts.CondNV:
		return true
	default:
		return false
	}
}
