package jsonrec

import (
	"context"
	"errors"
	"io"

	"github.com/reoring/jsonrec/i18n"
	eng "github.com/reoring/jsonrec/internal/engine"
	"github.com/reoring/jsonrec/internal/stream"
	"github.com/reoring/jsonrec/schema"
)

// Extract reads one JSON value from src and fills rec in place. Input that
// does not fit the record is dropped and listed in the Report.
//
// The error is non-nil only when the tokenizer fails, enforcement rejects the
// input, FailFast trips on an issue or ctx is cancelled; rec keeps everything
// bound before that point. Extract returns io.EOF when src holds no further
// value, so a stream of concatenated documents can be drained in a loop.
func Extract(ctx context.Context, rec *schema.Record, src Source, opts ...ExtractOpt) (Report, error) {
	if rec == nil {
		return Report{}, singleIssue(CodeParseError, "nil record")
	}
	opt := lastOpt(opts)
	h := NewHandler(rec, opt)
	enforced := enforce(src, opt, func(si eng.SimpleIssue) {
		h.add(fromSimpleIssue(si))
	})
	h.SetLocator(enforced)

	res, err := stream.NewDriver(h).Run(ctx, enforced)
	report := h.Report()
	report.Tokens = res.Tokens
	if err != nil {
		switch {
		case errors.Is(err, io.EOF) && res.Tokens == 0:
			return report, io.EOF
		case ctx.Err() != nil && errors.Is(err, ctx.Err()):
			return report, err
		}
		var ie eng.IssueError
		if errors.As(err, &ie) {
			// already collected through the enforcement sink
			return report, AppendIssues(nil, fromSimpleIssue(ie.SimpleIssue))
		}
		is := Issue{
			Path:    enforced.Path(),
			Code:    CodeParseError,
			Message: i18n.T(CodeParseError, nil) + ": " + err.Error(),
			Cause:   err,
			Offset:  enforced.Location(),
		}
		h.add(is)
		report.Issues = h.issues
		return report, AppendIssues(nil, is)
	}
	if h.fatal != nil {
		return report, AppendIssues(nil, *h.fatal)
	}
	return report, nil
}

// ExtractBytes fills rec from a JSON document held in memory.
func ExtractBytes(ctx context.Context, rec *schema.Record, data []byte, opts ...ExtractOpt) (Report, error) {
	return Extract(ctx, rec, JSONBytes(data), opts...)
}

// ExtractReader fills rec from the next JSON document in r.
func ExtractReader(ctx context.Context, rec *schema.Record, r io.Reader, opts ...ExtractOpt) (Report, error) {
	return Extract(ctx, rec, JSONReader(r), opts...)
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: "/", Message: msg, Offset: -1})
}
