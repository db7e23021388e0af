package common

import (
	"context"
	"fmt"

	"resumatch/internal/errors"
	"resumatch/internal/ingest"
	"resumatch/internal/utils"
)

// ResumeOperationFunc is a generic signature for operations that consume a
// resume file and produce a formattable result.
type ResumeOperationFunc[Output any] func(ctx context.Context, path string) (Output, error)

// RunResumeCommand encapsulates the common logic for resume-file CLI
// commands: validate the input, run the operation, hand off the output.
func RunResumeCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	resumePath string,
	operation ResumeOperationFunc[Output],
) error {
	if err := utils.ValidateInputFile(resumePath); err != nil {
		return errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", resumePath), err)
	}

	if !ingest.Supported(resumePath) {
		return errors.NewValidationError(errors.ErrCodeUnsupportedFileType,
			fmt.Sprintf("Unsupported resume file type: %s (expected .pdf or .txt)", resumePath), nil)
	}

	result, err := operation(ctx, resumePath)
	if err != nil {
		return err
	}

	return NewOutputHandler(logger).HandleOutput(result, cmdConfig)
}

// WriteResult formats and writes an already-computed result, for commands
// that do not read an input file.
func WriteResult(logger *errors.Logger, cmdConfig CommandConfig, result any) error {
	return NewOutputHandler(logger).HandleOutput(result, cmdConfig)
}
