package kernel

type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }

type JobTitle string

type JobDescription string

type CompanyName string

type Location string

type Skill string

type ResumeSummary string

type ResumeEmbedding []float32

type BucketURL string
