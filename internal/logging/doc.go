// Package logger provides leveled, colored logging for ccrypt commands.
//
// # Verbosity Levels
//
//   - --verbose: shows info messages
//   - --debug: shows everything, including debug details and logged errors
//
// Warnings are always shown. Without flags the spinner and the final
// message are the only other output.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Always shown
//	Logger.Errorf()          // Shown with --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the message as an error
//
// The root command creates the logger in its PersistentPreRun.
package logger
