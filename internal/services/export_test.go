package services

// SetMaxImageBytes lowers the download cap so tests can exceed it cheaply.
func SetMaxImageBytes(i *ImageImporter, n int64) {
	i.maxBytes = n
}
