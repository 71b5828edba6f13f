package service

import "errors"

var (
	// ErrPostNotFound is returned when no post exists for the given ID.
	ErrPostNotFound = errors.New("post not found")
	// ErrIdeaNotFound is returned when no idea exists for the given ID.
	ErrIdeaNotFound = errors.New("idea not found")
	// ErrUnderlineNotFound is returned when no underline exists for the given ID.
	ErrUnderlineNotFound = errors.New("underline not found")
	// ErrParagraphNotInPost is returned when an annotation references a
	// paragraph the post does not own.
	ErrParagraphNotInPost = errors.New("paragraph not found in this post")
)
