package fiberjobs

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CounterTestSuite struct {
	suite.Suite
}

func TestCounterTestSuite(t *testing.T) {
	suite.Run(t, new(CounterTestSuite))
}

func (ts *CounterTestSuite) TestStoreLoad() {
	var c Counter
	c.Store(5)
	ts.Equal(int32(5), c.Load())
}

func (ts *CounterTestSuite) TestDec() {
	var c Counter
	c.Store(2)
	c.dec()
	ts.Equal(int32(1), c.Load())
	c.dec()
	ts.Equal(int32(0), c.Load())
}

func (ts *CounterTestSuite) TestReleaseTwicePanics() {
	var c Counter
	c.release()
	ts.True(c.Released())
	ts.Panics(func() { c.release() })
}

func (ts *CounterTestSuite) TestFreeHookInvoked() {
	var called *Counter
	FreeHook = func(c *Counter) { called = c }
	defer func() { FreeHook = nil }()

	c := new(Counter)
	c.release()
	ts.Same(c, called)
}

func (ts *CounterTestSuite) TestPriorityString() {
	ts.Equal("low", Low.String())
	ts.Equal("normal", Normal.String())
	ts.Equal("high", High.String())
	ts.Equal("critical", Critical.String())
}
