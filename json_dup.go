package jsonrec

import (
	"errors"
	"io"

	eng "github.com/reoring/jsonrec/internal/engine"
	"github.com/reoring/jsonrec/internal/stream"
)

// DetectDuplicateKeys scans the next JSON value of src for object keys that
// appear twice in the same object. With Warn every duplicate is returned (at
// most maxIssues when it is positive); with Error the first duplicate is
// returned as the error. Ignore reports nothing.
func DetectDuplicateKeys(src Source, strict Strictness, maxIssues int) (Issues, error) {
	var iss Issues
	opt := ExtractOpt{Strictness: strict}
	sub := stream.NewSubtreeSource(enforce(src, opt, func(si eng.SimpleIssue) {
		iss = AppendIssues(iss, fromSimpleIssue(si))
	}))
	for maxIssues <= 0 || len(iss) < maxIssues {
		_, err := sub.NextToken()
		if errors.Is(err, io.EOF) {
			break
		}
		var ie eng.IssueError
		if errors.As(err, &ie) {
			return nil, AppendIssues(nil, fromSimpleIssue(ie.SimpleIssue))
		}
		if err != nil {
			return iss, err
		}
	}
	return iss, nil
}

// DetectDuplicateKeysBytes is DetectDuplicateKeys over a byte slice.
func DetectDuplicateKeysBytes(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	return DetectDuplicateKeys(JSONBytes(data), strict, maxIssues)
}

// DetectDuplicateKeysReader is DetectDuplicateKeys over an io.Reader.
func DetectDuplicateKeysReader(r io.Reader, strict Strictness, maxIssues int) (Issues, error) {
	return DetectDuplicateKeys(JSONReader(r), strict, maxIssues)
}

func fromSimpleIssue(s eng.SimpleIssue) Issue {
	return Issue{Code: s.Code, Path: s.Path, Message: s.Message, Offset: s.Offset}
}
