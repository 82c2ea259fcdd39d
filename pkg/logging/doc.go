// Package logging holds the process-wide slog logger used by every dataforge
// package.
//
// Library code never builds its own slog.Logger. It asks for one here,
// usually through a helper that attaches the fields the log line is about:
//
//	log := logging.WithOp("relational", "Merge") // component and op fields
//	log := logging.WithColumn(name)              // column field
//	log := logging.WithError(err)                // error field
//
// Binaries call Init once at startup to pick level, format and destination:
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug, Format: "json"}); err != nil {
//	    return err
//	}
//	defer logging.Close()
//
// Without Init the logger writes WARN and above as text to stderr.
package logging
