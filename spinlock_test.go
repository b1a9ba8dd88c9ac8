package fiberjobs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SpinLockTestSuite struct {
	suite.Suite
}

func TestSpinLockTestSuite(t *testing.T) {
	suite.Run(t, new(SpinLockTestSuite))
}

func (ts *SpinLockTestSuite) TestMutualExclusion() {
	var l SpinLock
	counter := 0

	var wg sync.WaitGroup
	const goroutines = 50
	const perGoroutine = 200
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				l.Lock()
				counter++
				l.Unlock()
			}
		}()
	}
	wg.Wait()

	ts.Equal(goroutines*perGoroutine, counter)
}

func (ts *SpinLockTestSuite) TestWithLockReleasesOnPanic() {
	var l SpinLock

	func() {
		defer func() { recover() }()
		l.WithLock(func() { panic("boom") })
	}()

	done := make(chan struct{})
	go func() {
		l.Lock()
		l.Unlock()
		close(done)
	}()
	<-done
}
