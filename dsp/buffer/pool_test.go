package buffer

import (
	"sync"
	"testing"
)

func TestGetReturnsZeroed(t *testing.T) {
	p := NewPool()

	b := p.Get(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	for i, v := range b.Data() {
		if v != 0 {
			t.Fatalf("Data()[%d] = %v, want 0", i, v)
		}
	}
	p.Put(b)
}

func TestReuseIsZeroed(t *testing.T) {
	p := NewPool()

	b := p.Get(4)
	b.Data()[0] = complex(1, 2)
	b.Data()[3] = complex(3, 4)
	p.Put(b)

	for _, n := range []int{4, 2, 16} {
		b2 := p.Get(n)
		if b2.Len() != n {
			t.Fatalf("Len() = %d, want %d", b2.Len(), n)
		}
		for i, v := range b2.Data() {
			if v != 0 {
				t.Fatalf("Get(%d).Data()[%d] = %v, want 0", n, i, v)
			}
		}
		p.Put(b2)
	}
}

func TestNegativeLength(t *testing.T) {
	b := NewPool().Get(-3)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
}

func TestPutNilSafe(_ *testing.T) {
	NewPool().Put(nil)
}

func TestConcurrentUse(t *testing.T) {
	p := NewPool()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				b := p.Get(32 + seed)
				for j := range b.Data() {
					if b.Data()[j] != 0 {
						t.Errorf("dirty buffer at %d", j)
						return
					}
					b.Data()[j] = complex(float64(seed), 1)
				}
				p.Put(b)
			}
		}(g)
	}
	wg.Wait()
}
