package types

// OutputDocument is the final merged PDF. Handle keys the download location;
// the file's lifetime is bounded by the server's temp-storage policy.
type OutputDocument struct {
	PDFBytes  []byte
	PageCount int
	Handle    string
	Filename  string
}
