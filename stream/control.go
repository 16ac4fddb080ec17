package stream

import "time"

// Query is a request to Control. The answer is stored in the query value.
type Query interface {
	isQuery()
}

type (
	// CanSeek asks whether the stream is seekable.
	CanSeek struct{ Value bool }
	// CanFastSeek asks whether seeking is cheap. Same as CanSeek for files.
	CanFastSeek struct{ Value bool }
	// CanPause asks whether the stream can be paused.
	CanPause struct{ Value bool }
	// CanControlPace asks whether the caller controls the timing of reads.
	CanControlPace struct{ Value bool }
	// GetMTU asks for the maximum transfer unit. Zero means unknown.
	GetMTU struct{ Value int }
	// GetPTSDelay asks for the recommended buffering delay.
	GetPTSDelay struct{ Value time.Duration }
	// SetPauseState pauses or resumes the stream.
	SetPauseState struct{ Paused bool }

	// GetTitleInfo is not supported by file access.
	GetTitleInfo struct{}
	// SetTitle is not supported by file access.
	SetTitle struct{ Title int }
	// SetSeekpoint is not supported by file access.
	SetSeekpoint struct{ Seekpoint int }
	// SetPrivateIDState is not supported by file access.
	SetPrivateIDState struct {
		ID       int
		Selected bool
	}
	// GetMeta is not supported by file access.
	GetMeta struct{ Meta map[string]string }
)

func (*CanSeek) isQuery()           {}
func (*CanFastSeek) isQuery()       {}
func (*CanPause) isQuery()          {}
func (*CanControlPace) isQuery()    {}
func (*GetMTU) isQuery()            {}
func (*GetPTSDelay) isQuery()       {}
func (*SetPauseState) isQuery()     {}
func (*GetTitleInfo) isQuery()      {}
func (*SetTitle) isQuery()          {}
func (*SetSeekpoint) isQuery()      {}
func (*SetPrivateIDState) isQuery() {}
func (*GetMeta) isQuery()           {}

// Control answers q by filling its value.
// ErrUnsupported is returned for queries that do not apply to file access.
func (s *Stream) Control(q Query) error {
	switch q := q.(type) {
	case *CanSeek:
		q.Value = s.seekable
	case *CanFastSeek:
		q.Value = s.seekable
	case *CanPause:
		q.Value = s.paceControl
	case *CanControlPace:
		q.Value = s.paceControl
	case *GetMTU:
		q.Value = 0
	case *GetPTSDelay:
		q.Value = time.Duration(s.config.CachingDelay) * time.Millisecond
	case *SetPauseState:
		// Nothing to do
	case *GetTitleInfo, *SetTitle, *SetSeekpoint, *SetPrivateIDState, *GetMeta:
		return ErrUnsupported
	default:
		s.log.Warningf("unimplemented query in control: %T", q)
		return ErrUnsupported
	}
	return nil
}
