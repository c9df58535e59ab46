package simerr

// Classifier classifies errors into short categorical labels for metrics
// and logging, decoupling the label vocabulary from the concrete error
// type a caller happens to be holding.
type Classifier interface {
	Classify(err error) string
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(error) string

var _ Classifier = ClassifierFunc(nil)

// Classify implements Classifier.
func (f ClassifierFunc) Classify(err error) string { return f(err) }

// DefaultClassifier labels a SimConnectError by its Kind, or "unknown" for
// any other error, including nil.
var DefaultClassifier = ClassifierFunc(func(err error) string {
	if err == nil {
		return ""
	}
	if sce, ok := err.(*SimConnectError); ok {
		return sce.Kind.String()
	}
	return "unknown"
})
