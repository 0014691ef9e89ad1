// Package logging provides structured logging for the evolution shell.
//
// The package wraps log/slog with a JSON handler. Logs go to
// {state_dir}/debug.log because the terminal belongs to the TUI while the
// program runs; [RotatingWriter] keeps the file bounded.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(stateDir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	log := logger.WithSession(sessionID).WithComponent("attach")
//	log.Warn("invariant repaired", "surface", "body-2", "found", "tech")
//
// # Reading Logs
//
// [ReadLogs], [FilterLogs], [WriteText] and [WriteJSON] back the
// "evolution logs" command:
//
//	entries, _ := logging.ReadLogs(stateDir)
//	warnings := logging.FilterLogs(entries, logging.LogFilter{Level: "WARN"})
//	_ = logging.WriteText(os.Stdout, warnings)
//
// # Testing
//
// Use [NopLogger] to discard output.
package logging
