package testerror

import (
	"github.com/rs/zerolog"

	"github.com/thanhminhmr/go-testerror/jserror"
)

// Summary compares a report before and after abbreviation.
type Summary struct {
	Errors       int `json:"errors"`
	FramesBefore int `json:"framesBefore"`
	FramesAfter  int `json:"framesAfter"`
}

// Summarize counts the errors of before and the frames of both trees.
func Summarize(before, after *jserror.Error) Summary {
	return Summary{
		Errors:       before.CountNodes(),
		FramesBefore: before.CountFrames(),
		FramesAfter:  after.CountFrames(),
	}
}

// Hidden is the number of frames abbreviation removed.
func (s Summary) Hidden() int {
	return s.FramesBefore - s.FramesAfter
}

func (s Summary) MarshalZerologObject(event *zerolog.Event) {
	event.Int("errors", s.Errors).
		Int("frames_before", s.FramesBefore).
		Int("frames_after", s.FramesAfter)
}
