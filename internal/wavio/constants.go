package wavio

// PCM constants
const (
	// pcmFormat is the WAV audio format tag for integer PCM.
	pcmFormat = 1

	// monoChannels is the channel count of every file this package writes.
	monoChannels = 1

	// BitDepth16 is the sample width of written files and decoded MP3 data.
	BitDepth16 = 16

	// unsignedBitDepth is the only WAV sample width stored offset-binary.
	unsignedBitDepth = 8

	// mp3Channels is the channel count go-mp3 always produces.
	mp3Channels = 2

	// bytesPerSample16 is the width of one 16-bit sample.
	bytesPerSample16 = 2

	// maxInt16 is the positive full-scale value of a 16-bit sample.
	maxInt16 = 32767.0

	// writeChunk is how many samples Writer hands the encoder at once.
	writeChunk = 4096
)
