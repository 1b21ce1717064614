package jobsrv

import (
	"strings"
	"testing"

	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

func TestDetailKeyViewerSegment(t *testing.T) {
	t.Parallel()

	anon := DetailKey(kernel.NewJobID("j1"), kernel.UserID(""))
	if anon != "job:j1:anonymous" {
		t.Fatalf("unexpected anonymous key %q", anon)
	}

	viewer := DetailKey(kernel.NewJobID("j1"), kernel.NewUserID("u1"))
	if viewer != "job:j1:u1" {
		t.Fatalf("unexpected viewer key %q", viewer)
	}

	if !strings.HasPrefix(anon, strings.TrimSuffix(DetailKeyPattern(kernel.NewJobID("j1")), "*")) {
		t.Fatalf("pattern %q should cover key %q", DetailKeyPattern(kernel.NewJobID("j1")), anon)
	}
}

func TestListKeyIsCanonicalOverSkillOrder(t *testing.T) {
	t.Parallel()

	pg := kernel.PaginationOptions{Page: 1, PageSize: 20}

	a := ListKey(job.Filters{Skills: []string{"go", "sql", "docker"}}, pg)
	b := ListKey(job.Filters{Skills: []string{"sql", "docker", "go"}}, pg)
	if a != b {
		t.Fatalf("skill order should not change the key: %q vs %q", a, b)
	}
}

func TestListKeySeparatorsInValuesDoNotCollide(t *testing.T) {
	t.Parallel()

	pg := kernel.PaginationOptions{Page: 1, PageSize: 20}

	// Without escaping these two filter sets would flatten to the same
	// "loc=A|type=B|..." string and share one cache entry.
	a := ListKey(job.Filters{Location: "A|type=B"}, pg)
	b := ListKey(job.Filters{Location: "A", JobType: job.JobType("B|type=")}, pg)
	if a == b {
		t.Fatalf("distinct filter sets collided on key %q", a)
	}

	c := ListKey(job.Filters{Skills: []string{"go,sql"}}, pg)
	d := ListKey(job.Filters{Skills: []string{"go", "sql"}}, pg)
	if c == d {
		t.Fatalf("distinct skill sets collided on key %q", c)
	}
}

func TestListKeyDoesNotMutateFilters(t *testing.T) {
	t.Parallel()

	skills := []string{"sql", "go"}
	ListKey(job.Filters{Skills: skills}, kernel.PaginationOptions{Page: 1, PageSize: 20})

	if skills[0] != "sql" || skills[1] != "go" {
		t.Fatalf("caller's skill slice was reordered: %v", skills)
	}
}

func TestListKeyVariesByFilterAndPage(t *testing.T) {
	t.Parallel()

	pg := kernel.PaginationOptions{Page: 1, PageSize: 20}
	base := ListKey(job.Filters{}, pg)

	salary := 50000
	variants := []string{
		ListKey(job.Filters{Location: "Lima"}, pg),
		ListKey(job.Filters{JobType: job.JobTypeContract}, pg),
		ListKey(job.Filters{SalaryMin: &salary}, pg),
		ListKey(job.Filters{RemoteAllowed: true}, pg),
		ListKey(job.Filters{}, kernel.PaginationOptions{Page: 2, PageSize: 20}),
	}

	seen := map[string]bool{base: true}
	for _, v := range variants {
		if seen[v] {
			t.Fatalf("key collision: %q", v)
		}
		seen[v] = true
	}
}
