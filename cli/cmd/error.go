package cmd

import "github.com/ardnew/vic3def/lang"

// Command errors. Each wraps the underlying cause.
var (
	ErrOpenSource  = lang.NewError("open source")
	ErrParseSource = lang.NewError("parse source")
	ErrQuery       = lang.NewError("query")
	ErrWriteOutput = lang.NewError("write output")
	ErrWriteConfig = lang.NewError("write configuration file")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
)
