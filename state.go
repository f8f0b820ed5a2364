package jsonextract

// State is the observable status of an intake. It is exactly one of Idle,
// Loading, Success or Failure and is replaced wholesale on each transition.
type State interface {
	state()
}

// Idle means nothing has been submitted, or the intake was reset.
type Idle struct{}

// Loading means a file is being decoded and processed.
type Loading struct {
	FileName string
}

// Success holds the outcome of the most recent submission.
type Success struct {
	FileName string
	Result   *Result
	Digest   string
}

// Failure holds the error of the most recent submission. No file name or
// result survives a failure.
type Failure struct {
	Err *Error
}

func (Idle) state()    {}
func (Loading) state() {}
func (Success) state() {}
func (Failure) state() {}

// Snapshot is the serializable view of a State.
type Snapshot struct {
	State     string   `json:"state"`
	FileName  string   `json:"fileName,omitempty"`
	Mode      Mode     `json:"mode,omitempty"`
	Count     int      `json:"count,omitempty"`
	Records   []Record `json:"records,omitempty"`
	Fragments []string `json:"fragments,omitempty"`
	Text      string   `json:"text,omitempty"`
	Digest    string   `json:"digest,omitempty"`
	Code      string   `json:"code,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// NewSnapshot converts s into its serializable view.
func NewSnapshot(s State) Snapshot {
	switch s := s.(type) {
	case Loading:
		return Snapshot{State: "loading", FileName: s.FileName}
	case Success:
		return Snapshot{
			State:     "success",
			FileName:  s.FileName,
			Mode:      s.Result.Mode,
			Count:     s.Result.Len(),
			Records:   s.Result.Records,
			Fragments: s.Result.Fragments,
			Text:      s.Result.Text(),
			Digest:    s.Digest,
		}
	case Failure:
		return Snapshot{State: "error", Code: ErrorCode(s.Err), Message: ErrorMessage(s.Err)}
	}
	return Snapshot{State: "idle"}
}
