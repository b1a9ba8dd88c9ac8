package workloads

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/go-foundations/fiberjobs"
)

type WorkloadsTestSuite struct {
	suite.Suite
}

func TestWorkloadsTestSuite(t *testing.T) {
	suite.Run(t, new(WorkloadsTestSuite))
}

func (ts *WorkloadsTestSuite) TestAutoNameIsLongerThanPrefix() {
	name := AutoName()
	ts.True(len(name) > len("job-"))
}

func (ts *WorkloadsTestSuite) TestNamedLeavesExplicitNameAlone() {
	job := fiberjobs.Job{Name: "explicit"}
	ts.Equal("explicit", Named(job).Name)
}

func (ts *WorkloadsTestSuite) TestNamedFillsInBlankName() {
	job := fiberjobs.Job{}
	ts.NotEmpty(Named(job).Name)
}

func (ts *WorkloadsTestSuite) TestBatchBuildsOneJobPerArg() {
	var c fiberjobs.Counter
	c.Store(3)
	entry := func(ctx *fiberjobs.JobContext, arg any) {}

	jobs, err := Batch(entry, []any{1, 2, 3}, fiberjobs.High, &c)
	ts.NoError(err)

	ts.Len(jobs, 3)
	for i, j := range jobs {
		ts.Equal(i+1, j.Arg)
		ts.Equal(fiberjobs.High, j.Priority)
		ts.Same(&c, j.Counter)
		ts.NotEmpty(j.Name)
	}
}

func (ts *WorkloadsTestSuite) TestBatchRejectsNilEntry() {
	_, err := Batch(nil, []any{1}, fiberjobs.Normal, nil)
	ts.Error(err)
}

func (ts *WorkloadsTestSuite) TestBatchRejectsMismatchedCounter() {
	var c fiberjobs.Counter
	c.Store(1)
	entry := func(ctx *fiberjobs.JobContext, arg any) {}

	_, err := Batch(entry, []any{1, 2}, fiberjobs.Normal, &c)
	ts.Error(err)
}
