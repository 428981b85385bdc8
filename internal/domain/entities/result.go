package entities

// PipelineResult records the outcome of signing a single artifact
type PipelineResult struct {
	InputPath    string
	OutputPath   string
	Succeeded    bool
	ErrorMessage string
}

// SucceededResult builds a successful result for an artifact
func SucceededResult(inputPath, outputPath string) PipelineResult {
	return PipelineResult{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Succeeded:  true,
	}
}

// FailedResult builds a failed result carrying the error message
func FailedResult(inputPath string, err error) PipelineResult {
	r := PipelineResult{InputPath: inputPath}
	if err != nil {
		r.ErrorMessage = err.Error()
	}
	return r
}
