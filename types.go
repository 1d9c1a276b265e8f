package jsonrec

// Severity expresses the severity level for enforcement issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures token-level enforcement.
type Strictness struct {
	OnDuplicateKey Severity // Warn collects duplicate_key issues, Error aborts.
}

// DuplicatePolicy decides which occurrence of a repeated key binds.
type DuplicatePolicy int

const (
	FirstWins DuplicatePolicy = iota // Later duplicates are dropped.
	LastWins                         // Later duplicates reset and rebind the field.
)

func (p DuplicatePolicy) String() string {
	if p == LastWins {
		return "last-wins"
	}
	return "first-wins"
}

// ExtractOpt bundles extraction options. The zero value extracts with
// first-wins duplicates and no limits.
type ExtractOpt struct {
	Strictness Strictness
	Duplicates DuplicatePolicy
	MaxDepth   int
	MaxBytes   int64
	// FailFast aborts at the first issue instead of dropping and continuing.
	FailFast bool
	// IssueSink receives every issue as it is produced.
	IssueSink func(Issue)
}

func lastOpt(opts []ExtractOpt) ExtractOpt {
	if len(opts) == 0 {
		return ExtractOpt{}
	}
	return opts[len(opts)-1]
}
