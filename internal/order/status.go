package order

type Status string

// Finalized orders start Pending. There is no transition out of it yet.
const StatusPending Status = "Pending"
