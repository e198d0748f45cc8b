// Package analyzer drives the two verification passes over an s-Java
// source: a signature sweep followed by full validation.
package analyzer

import (
	"strings"

	"go.uber.org/zap"

	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/internal/sjava/classify"
	"martianoff/sjavac/internal/sjava/symbols"
	"martianoff/sjavac/internal/sjava/validator"
	"martianoff/sjavac/sjavacerr"
)

const (
	passSweep    = "sweep"
	passValidate = "validate"
)

// Analyzer holds the analysis state of one source file. It is not safe for
// concurrent use and must not be reused for another file.
type Analyzer struct {
	table      *symbols.Table
	variables  *validator.VariableValidator
	methods    *validator.MethodValidator
	conditions *validator.ConditionValidator
	logger     *zap.Logger
	phase      phase
}

// NewAnalyzer creates an analyzer with an empty symbol table. A nil logger
// disables logging.
func NewAnalyzer(opts validator.Options, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	table := symbols.NewTable()
	return &Analyzer{
		table:      table,
		variables:  validator.NewVariableValidator(table),
		methods:    validator.NewMethodValidator(table, opts),
		conditions: validator.NewConditionValidator(table),
		logger:     logger,
	}
}

// Table exposes the symbol table, mainly for inspection after a run.
func (a *Analyzer) Table() *symbols.Table {
	return a.table
}

// Sweep is the first pass. It validates and registers global variables,
// registers every method signature, rejects any other statement at global
// level and checks brace balance. Method bodies are only scanned for braces.
func (a *Analyzer) Sweep(src sjava.LineSource) error {
	a.phase = phaseGlobal
	lineNo, err := a.scan(src, passSweep, a.sweepLine)
	if err != nil {
		return err
	}
	if err := a.checkClosed(lineNo); err != nil {
		return err
	}
	a.logger.Debug("methods.registered", zap.Strings("names", a.table.Methods().Names()))
	return nil
}

func (a *Analyzer) sweepLine(line classify.Line, classifyErr error) error {
	if a.phase.inMethod() {
		if classifyErr != nil {
			// the validation pass reports it with full context
			return nil
		}
		switch line.Kind {
		case classify.KindBlock, classify.KindMethodDeclaration:
			a.table.EnterScope()
		case classify.KindCloseScope:
			if err := a.table.ExitScope(); err != nil {
				return err
			}
			if a.table.Depth() == 0 {
				a.phase = phaseGlobal
			}
		}
		return nil
	}
	if classifyErr != nil {
		return classifyErr
	}

	next, err := transition(a.phase, line.Kind)
	if err != nil {
		return err
	}
	a.phase = next

	switch line.Kind {
	case classify.KindDeclaration:
		return a.variables.ValidateDeclaration(line)
	case classify.KindAssignment:
		return a.variables.ValidateAssignment(line)
	case classify.KindMethodDeclaration:
		if err := a.methods.DeclareMethod(line); err != nil {
			return err
		}
		a.phase = phaseMethodBody
	case classify.KindCloseScope:
		return a.table.ExitScope()
	}
	return nil
}

// Validate is the second pass. Global statements were validated by the
// sweep and are skipped; everything inside method bodies is validated with
// every signature known.
func (a *Analyzer) Validate(src sjava.LineSource) error {
	a.table.ResetVariables()
	a.phase = phaseGlobal
	lineNo, err := a.scan(src, passValidate, a.validateLine)
	if err != nil {
		return err
	}
	return a.checkClosed(lineNo)
}

func (a *Analyzer) validateLine(line classify.Line, classifyErr error) error {
	if classifyErr != nil {
		return classifyErr
	}

	wasGlobal := a.phase == phaseGlobal
	next, err := transition(a.phase, line.Kind)
	if err != nil {
		return err
	}
	a.phase = next

	switch line.Kind {
	case classify.KindDeclaration:
		if wasGlobal {
			return nil
		}
		return a.variables.ValidateDeclaration(line)
	case classify.KindAssignment:
		if wasGlobal {
			return nil
		}
		return a.variables.ValidateAssignment(line)
	case classify.KindMethodDeclaration:
		if err := a.methods.EnterMethod(line); err != nil {
			return err
		}
		a.phase = phaseMethodBody
	case classify.KindBlock:
		return a.conditions.ValidateCondition(line)
	case classify.KindMethodCall:
		return a.methods.ValidateCall(line)
	case classify.KindReturn:
		return a.methods.ValidateReturn(line)
	case classify.KindCloseScope:
		if err := a.table.ExitScope(); err != nil {
			return err
		}
		if a.table.Depth() == 0 {
			a.exitMethod()
		}
	}
	return nil
}

// exitMethod restores the globals to their global-level state so the next
// method body does not see initialization done by this one.
func (a *Analyzer) exitMethod() {
	a.logger.Debug("method.exit", zap.Stringer("phase", a.phase))
	a.table.ResetGlobalsToDeclarationState()
	a.phase = phaseGlobal
}

// scan feeds each non-blank, non-comment line to handle and stops at the
// first error, which is annotated with its 1-based line number. It returns
// the number of lines read.
func (a *Analyzer) scan(src sjava.LineSource, pass string, handle func(classify.Line, error) error) (int, error) {
	lineNo := 0
	for {
		raw, ok := src.NextLine()
		if !ok {
			return lineNo, nil
		}
		lineNo++

		text := strings.TrimSpace(raw)
		if classify.IsSkippable(text) {
			continue
		}
		line, classifyErr := classify.Classify(text)

		a.logger.Debug("line",
			zap.String("pass", pass),
			zap.Int("line", lineNo),
			zap.Stringer("kind", line.Kind),
			zap.Int("depth", a.table.Depth()),
			zap.Stringer("phase", a.phase),
		)

		if err := handle(line, classifyErr); err != nil {
			a.logger.Debug("line.rejected",
				zap.String("pass", pass),
				zap.Int("line", lineNo),
				zap.Error(err),
			)
			return lineNo, sjavacerr.At(err, lineNo)
		}
	}
}

func (a *Analyzer) checkClosed(lineNo int) error {
	if depth := a.table.Depth(); depth != 0 {
		err := sjavacerr.Newf(sjavacerr.TypeStructural, "%d scope(s) still open at end of file", depth)
		return sjavacerr.At(err, lineNo)
	}
	return nil
}

// Ensure Analyzer implements the sjava.Analyzer interface.
var _ sjava.Analyzer = (*Analyzer)(nil)
