package storage

// Ledger is the full set of payment ledger operations used by the payment workflow.
type Ledger interface {
	AttemptCreator
	FinalizationStore
}

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on the
// more granular interfaces (ApiStore, FinalizationStore, etc.) instead of this one.
type Storage interface {
	ApiStore
	FinalizationStore
}
