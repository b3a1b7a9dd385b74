// Package validator holds the result model shared by the repository checks
// (skill frontmatter validation and cross-reference validation).
//
// A check fills a [Result] with [Issue] values and a closing summary line;
// a [Reporter] renders it as text or JSON:
//
//	result := &validator.Result{Title: "Checking 3 skills..."}
//	result.AddWarning("foo", "No frontmatter in foo")
//	result.Summary = "ok (1 skills with frontmatter warnings)"
//	validator.NewReporter(os.Stdout, validator.FormatText, false).Report(result)
package validator
