// Package jsonrec fills statically typed records from JSON.
//
// A record type (see package schema) describes named fields of scalar,
// nested record, list, set, string-keyed map and optional kinds. Extract
// streams tokens from a Source into a Handler, which fills a caller-owned
// schema.Record in place:
//
//   - matching keys and kinds are stored,
//   - unknown keys, kind mismatches and unsupported shapes are dropped and
//     reported as Issues in the Report,
//   - the first occurrence of a repeated key wins unless LastWins is set,
//   - extraction stops early once the outermost record has every field bound
//     and another key arrives.
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place tokenizer drivers under source/ and the CLI under cmd/jsonrec.
// - Path queries against parsed documents live in package query.
//
// Typical usage:
//
//	reg, err := schema.LoadFile(afero.NewOsFs(), "types.yaml")
//	rt, _ := reg.Lookup("Person")
//	rec := schema.NewRecord(rt)
//	report, err := jsonrec.ExtractBytes(ctx, rec, data)
//	for _, is := range report.Issues {
//		log.Println(is)
//	}
package jsonrec
