package core

import "os"

// ErrorSink bundles the tri-modal error policy (§7) with the Logger it
// reports through and the process-exit function it invokes at
// ErrorPolicyAbortProcess. It is constructed once per parse call and
// threaded through query.Runner and parser.Parser, mirroring the source's
// QueryRunner(url, dom_context, error_policy) constructor.
type ErrorSink struct {
	Logger Logger
	Policy ErrorPolicy

	// Exit terminates the process at ErrorPolicyAbortProcess. Defaults to
	// os.Exit; tests inject a non-terminating stand-in to observe the
	// abort decision without killing the test binary.
	Exit func(code int)
}

// NewErrorSink returns an ErrorSink with a StderrLogger default and a real
// os.Exit.
func NewErrorSink(logger Logger, policy ErrorPolicy) *ErrorSink {
	if logger == nil {
		logger = StderrLogger{}
	}
	return &ErrorSink{Logger: logger, Policy: policy, Exit: os.Exit}
}

// Report applies the policy to one non-fatal error: IGNORE does nothing,
// LOG_ERROR and ABORT_PROCESS both log, and ABORT_PROCESS additionally
// terminates the process.
func (s *ErrorSink) Report(format string, args ...any) {
	if !s.Policy.AtLeast(ErrorPolicyLogError) {
		return
	}
	s.Logger.Errorf(format, args...)
	if s.Policy.AtLeast(ErrorPolicyAbortProcess) {
		exit := s.Exit
		if exit == nil {
			exit = os.Exit
		}
		exit(1)
	}
}
