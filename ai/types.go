package ai

// FileHandle identifies a file staged on the remote file service.
//
// Name (e.g. "files/abc123") addresses the file for status and delete calls.
// URI is the reference embedded in generation requests. They look similar
// but belong to different identifier spaces.
type FileHandle struct {
	Name      string
	URI       string
	MIMEType  string
	SizeBytes int64
	State     string
}

// VideoAnalysis is the parsed output of a video analysis call.
type VideoAnalysis struct {
	Transcript string
	Summary    string
}
