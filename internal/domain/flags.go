package domain

import "time"

// Progress flag names. The set is fixed; flags are independent booleans with
// no enforced ordering between them.
const (
	FlagUploadedCV         = "has_uploaded_cv"
	FlagAnalyzedCV         = "has_analyzed_cv"
	FlagGeneratedJD        = "has_generated_jd"
	FlagPublishedJob       = "has_published_job"
	FlagAppliedToJob       = "has_applied_to_job"
	FlagJDGenerationFailed = "jd_generation_failed"
)

// KnownFlags lists every valid progress flag name.
var KnownFlags = []string{
	FlagUploadedCV,
	FlagAnalyzedCV,
	FlagGeneratedJD,
	FlagPublishedJob,
	FlagAppliedToJob,
	FlagJDGenerationFailed,
}

// ValidFlag reports whether name is a known progress flag.
func ValidFlag(name string) bool {
	for _, f := range KnownFlags {
		if f == name {
			return true
		}
	}
	return false
}

// ProgressFlags is the per-user set of milestone booleans. It is advisory
// state consumed by the UI to gate which tools are presented as available;
// it is never a correctness gate on backend operations.
type ProgressFlags struct {
	UserID             string    `db:"user_id"              json:"user_id"`
	HasUploadedCV      bool      `db:"has_uploaded_cv"      json:"has_uploaded_cv"`
	HasAnalyzedCV      bool      `db:"has_analyzed_cv"      json:"has_analyzed_cv"`
	HasGeneratedJD     bool      `db:"has_generated_jd"     json:"has_generated_jd"`
	HasPublishedJob    bool      `db:"has_published_job"    json:"has_published_job"`
	HasAppliedToJob    bool      `db:"has_applied_to_job"   json:"has_applied_to_job"`
	JDGenerationFailed bool      `db:"jd_generation_failed" json:"jd_generation_failed"`
	CreatedAt          time.Time `db:"created_at"           json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"           json:"updated_at"`
}

// DefaultFlags returns the all-false flag record created on first access.
func DefaultFlags(userID string) *ProgressFlags {
	now := time.Now()
	return &ProgressFlags{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
