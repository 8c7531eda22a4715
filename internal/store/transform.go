package store

// Transform is a field value resolved by the store at write time.
type Transform interface {
	transform()
}

type serverTimestamp struct{}

func (serverTimestamp) transform() {}

// ServerTimestamp is replaced by the store's clock when the write is applied.
var ServerTimestamp Transform = serverTimestamp{}

// IncrementOp adds N to the stored number. A missing field counts as zero.
type IncrementOp struct {
	N int64
}

func (IncrementOp) transform() {}

// Increment returns a transform that adds n to the field.
func Increment(n int64) Transform {
	return IncrementOp{N: n}
}

// IsServerTimestamp reports whether v is the ServerTimestamp transform.
func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}
