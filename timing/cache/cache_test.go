package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/a32sim/timing/cache"
)

var _ = Describe("Cache", func() {
	var c *cache.Cache

	BeforeEach(func() {
		// Tiny cache for testing: 128B, 2-way, 32B lines (2 sets)
		config := cache.Config{
			Size:          128,
			Associativity: 2,
			BlockSize:     32,
			MissPenalty:   10,
		}
		Expect(config.Validate()).To(Succeed())
		c = cache.New(config)
	})

	Describe("Fetch", func() {
		It("should miss on cold cache", func() {
			result := c.Fetch(0x1000)

			Expect(result.Hit).To(BeFalse())
			Expect(result.Penalty).To(Equal(uint64(10)))
			Expect(result.Evicted).To(BeFalse())

			stats := c.Stats()
			Expect(stats.Fetches).To(Equal(uint64(1)))
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Hits).To(Equal(uint64(0)))
		})

		It("should hit on the same line", func() {
			c.Fetch(0x1000)

			result := c.Fetch(0x101C)

			Expect(result.Hit).To(BeTrue())
			Expect(result.Penalty).To(BeZero())
			Expect(c.Stats().Hits).To(Equal(uint64(1)))
		})

		It("should miss on the next line", func() {
			c.Fetch(0x1000)

			Expect(c.Fetch(0x1020).Hit).To(BeFalse())
		})

		It("should evict the least recently used way", func() {
			// 0x00, 0x40 and 0x80 all map to set 0
			c.Fetch(0x00)
			c.Fetch(0x40)

			result := c.Fetch(0x80)
			Expect(result.Evicted).To(BeTrue())
			Expect(result.EvictedAddr).To(Equal(uint32(0x00)))

			Expect(c.Fetch(0x40).Hit).To(BeTrue())

			result = c.Fetch(0x00)
			Expect(result.Hit).To(BeFalse())
			Expect(result.EvictedAddr).To(Equal(uint32(0x80)))

			Expect(c.Stats().Evictions).To(Equal(uint64(2)))
		})
	})

	Describe("Invalidate", func() {
		It("should force a miss on the invalidated line", func() {
			c.Fetch(0x1000)
			c.Invalidate(0x1004)

			Expect(c.Fetch(0x1000).Hit).To(BeFalse())
		})
	})

	Describe("Reset", func() {
		It("should clear lines and statistics", func() {
			c.Fetch(0x1000)
			c.Reset()

			Expect(c.Stats()).To(Equal(cache.Statistics{}))
			Expect(c.Fetch(0x1000).Hit).To(BeFalse())
		})
	})

	Describe("Statistics", func() {
		It("should compute the hit rate", func() {
			Expect(c.Stats().HitRate()).To(BeZero())

			c.Fetch(0x0)
			c.Fetch(0x4)
			c.Fetch(0x8)
			c.Fetch(0xC)

			Expect(c.Stats().HitRate()).To(Equal(0.75))
		})
	})

	Describe("Config", func() {
		It("should accept the default config", func() {
			Expect(cache.DefaultConfig().Validate()).To(Succeed())
		})

		It("should reject a size that is not a whole number of sets", func() {
			config := cache.Config{Size: 100, Associativity: 2, BlockSize: 32}
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject zero ways", func() {
			config := cache.Config{Size: 128, Associativity: 0, BlockSize: 32}
			Expect(config.Validate()).To(HaveOccurred())
		})
	})
})
