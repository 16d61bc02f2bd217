package report

// Encoder turns the assembled report model into one output format. Adding a
// format means registering one more encoder; the data assembly never changes.
type Encoder interface {
	Encode(data *Data) ([]byte, error)
	ContentType() string
	Extension() string
}
