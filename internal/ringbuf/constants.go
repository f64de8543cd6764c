package ringbuf

const (
	// bufferGrowthFactor is how much a Buffer grows when a write overflows it.
	bufferGrowthFactor = 2

	// cacheLinePad separates the producer and consumer cursors of a Ring.
	cacheLinePad = 56

	// bytesPerSample is the width of a 16-bit PCM sample on the wire.
	bytesPerSample = 2
)
