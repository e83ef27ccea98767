package generator

// Step names reported through ProgressEvent.
const (
	StepLoad     = "load_data"
	StepValidate = "validate_data"
	StepOptimize = "optimize_data"
	StepTheme    = "resolve_theme"
	StepLayout   = "resolve_layout"
	StepFonts    = "install_fonts"
	StepRender   = "render_template"
	StepWrite    = "write_pdf"
)

// Step categories.
const (
	CategoryData   = "data"
	CategoryStyle  = "style"
	CategoryOutput = "output"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name     string
	Category string
}

// Steps lists the pipeline steps in execution order. Load and validate are
// alternatives: a file is loaded with its checks, in-memory data is
// validated.
var Steps = []StepDefinition{
	{Name: StepLoad, Category: CategoryData},
	{Name: StepValidate, Category: CategoryData},
	{Name: StepOptimize, Category: CategoryData},
	{Name: StepTheme, Category: CategoryStyle},
	{Name: StepLayout, Category: CategoryStyle},
	{Name: StepFonts, Category: CategoryStyle},
	{Name: StepRender, Category: CategoryOutput},
	{Name: StepWrite, Category: CategoryOutput},
}

// StepCategory returns the category of the named step, or "" if unknown.
func StepCategory(name string) string {
	for _, s := range Steps {
		if s.Name == name {
			return s.Category
		}
	}
	return ""
}

// ProgressEvent represents a progress update during generation
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RenderID string `json:"render_id,omitempty"`
}

// ProgressCallback is called when generation progress occurs
type ProgressCallback func(event ProgressEvent)
