package testerror

import (
	"slices"

	"github.com/thanhminhmr/go-testerror/jserror"
)

// Abbreviate returns a copy of err where every error in the tree has its
// trailing internal frames removed. The input is not modified. Errors whose
// frames are all internal keep every frame.
func Abbreviate(err *jserror.Error) *jserror.Error {
	if err == nil {
		return nil
	}
	result := *err
	result.Frames = abbreviateFrames(err.Frames)
	result.SourceLineFrameIndex = copyIndex(err.SourceLineFrameIndex)
	result.Cause = Abbreviate(err.Cause)
	if err.Aggregated != nil {
		result.Aggregated = make([]jserror.Error, len(err.Aggregated))
		for index := range err.Aggregated {
			result.Aggregated[index] = *Abbreviate(&err.Aggregated[index])
		}
	}
	return &result
}

func abbreviateFrames(frames jserror.StackFrames) jserror.StackFrames {
	if frames == nil {
		return nil
	}
	if !frames.HasUserFrame() {
		return slices.Clone(frames)
	}
	end := len(frames)
	for end > 0 && frames[end-1].IsInternal() {
		end--
	}
	return slices.Clone(frames[:end])
}

func copyIndex(index *int) *int {
	if index == nil {
		return nil
	}
	value := *index
	return &value
}
