package recommendation

import "github.com/jobpulse/jobpulse/pkg/kernel"

// Method selects the recommendation strategy the engine runs.
type Method string

const (
	MethodContentBased  Method = "content-based"
	MethodCollaborative Method = "collaborative"
	MethodHybrid        Method = "hybrid"
)

// IsValid checks the method against the known set
func (m Method) IsValid() bool {
	switch m {
	case MethodContentBased, MethodCollaborative, MethodHybrid:
		return true
	}
	return false
}

// RecommendedJob is one scored recommendation as the engine returns it.
type RecommendedJob struct {
	JobID    kernel.JobID `json:"job_id"`
	Title    string       `json:"title"`
	Location string       `json:"location"`
	JobType  string       `json:"job_type"`
	Score    float64      `json:"score"`
}

// TrainResult reports a completed model-training run.
type TrainResult struct {
	Message string `json:"message"`
}
