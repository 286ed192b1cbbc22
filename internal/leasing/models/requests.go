package models

// SignRequest carries one party's signature submission. IPAddress and
// UserAgent come from the transport layer and feed the activity log.
type SignRequest struct {
	Signature     string
	AgreedToTerms bool
	IPAddress     string
	UserAgent     string
}

// SignResult is the outcome of a successful sign operation.
type SignResult struct {
	Lease     *Lease
	Completed bool
	Message   string
}

// PendingLease is one entry in a party's pending-signature list.
type PendingLease struct {
	Lease    *Lease
	Progress Progress
}

// ResendResult reports how many tenants were reminded.
type ResendResult struct {
	Reminded int
	Message  string
}
