// Package advisory composes repository state and guideline content into the
// structured payload returned by the generate operation.
package advisory

import (
	"commitkit/internal/gitrepo"
	"commitkit/internal/guidelines"
)

// CommitAdvisory is the full material a calling model needs to write a
// conventional commit message. It is constructed and returned within a single
// call; nothing is persisted.
type CommitAdvisory struct {
	RepositoryPath string
	Report         gitrepo.DiffReport
	Guideline      guidelines.Document

	// Instructions tells the caller what to do with the material above.
	Instructions string
}

const generateInstructions = `Generate a conventional commit message:
Step 1: Read the guidelines above.
Step 2: Analyze the staged diff.
        - Understand what changed in the code.
        - Determine the most appropriate commit type.
        - Identify the scope if applicable.
Step 3: Generate the commit message following the guidelines exactly.
Step 4: Output the command.
        - Return ONLY: git commit -m "your message"`

const emptyDiffInstructions = `No changes are staged in this repository. ` +
	`Run 'git add' to stage the changes you want to commit, then call this tool again. ` +
	`The guidelines above still apply to the message you will eventually write.`

// Assembler builds CommitAdvisory values. Pure composition: no I/O, cannot
// fail given well-formed inputs.
type Assembler struct{}

// NewAssembler creates an Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble combines a diff report and a guideline document into one advisory.
// An empty report still carries the guideline text so the caller can act
// informatively, with the empty state flagged rather than silently omitted.
func (a *Assembler) Assemble(report gitrepo.DiffReport, doc guidelines.Document, repositoryPath string) CommitAdvisory {
	instructions := generateInstructions
	if report.IsEmpty {
		instructions = emptyDiffInstructions
	}

	return CommitAdvisory{
		RepositoryPath: repositoryPath,
		Report:         report,
		Guideline:      doc,
		Instructions:   instructions,
	}
}
