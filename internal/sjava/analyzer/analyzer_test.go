package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/internal/sjava/analyzer"
	"martianoff/sjavac/internal/sjava/source"
	"martianoff/sjavac/internal/sjava/validator"
	"martianoff/sjavac/sjavacerr"
)

func compile(t *testing.T, code string, opts validator.Options) (sjava.Verdict, error) {
	t.Helper()
	a := analyzer.NewAnalyzer(opts, zaptest.NewLogger(t))
	return sjava.NewCompiler(a).Compile(source.FromString(code))
}

func TestAnalyzer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind sjavacerr.ErrorType
		wantLine int
	}{
		{
			name: "Forward call to a later method",
			input: `void f(int x) {
return;
}
void g() {
f(5);
}`,
		},
		{
			name: "Call before the callee is declared",
			input: `void g() {
f(5, "s");
}
void f(int x, String s) {
}`,
		},
		{
			name: "Call with a mismatched literal",
			input: `void f(int x) {
return;
}
void g() {
f("s");
}`,
			wantKind: sjavacerr.TypeMismatch,
			wantLine: 5,
		},
		{
			name:  "Self assignment of an initialized global",
			input: "int x = 5;\nx = x;",
		},
		{
			name:     "Unclosed method body",
			input:    "void f() {",
			wantKind: sjavacerr.TypeStructural,
			wantLine: 1,
		},
		{
			name:     "Bare brace is not a statement",
			input:    "{",
			wantKind: sjavacerr.TypeSyntax,
			wantLine: 1,
		},
		{
			name:     "Extra closing brace",
			input:    "void f() {\n}\n}",
			wantKind: sjavacerr.TypeStructural,
			wantLine: 3,
		},
		{
			name:     "Double underscore name",
			input:    "int __x;",
			wantKind: sjavacerr.TypeIllegalName,
			wantLine: 1,
		},
		{
			name:     "Lone underscore name",
			input:    "int _ = 1;",
			wantKind: sjavacerr.TypeIllegalName,
			wantLine: 1,
		},
		{
			name:     "Reserved word as name",
			input:    "int while;",
			wantKind: sjavacerr.TypeIllegalName,
			wantLine: 1,
		},
		{
			name:     "Illegal method name",
			input:    "void _f() {\n}",
			wantKind: sjavacerr.TypeIllegalName,
			wantLine: 1,
		},
		{
			name: "Comments and blank lines",
			input: `// header

int a = 1;
   // indented comment
void f() {

}`,
		},
		{
			name: "Literal widening and quote aware lists",
			input: `double d = 5, e = .5, f = -3.;
boolean b = 3, c = true;
char ch = ',';
String s = "a, b", t = "c";`,
		},
		{
			name:  "Quote char followed by another binding",
			input: "char a = ''', b = 'x';",
		},
		{
			name: "Quote char as a call argument",
			input: `void f(char c, int n) {
}
void g() {
f(''', 5);
}`,
		},
		{
			name: "Embedded quote keeps later bindings",
			input: `String s = "a"b", t = "c";
void g() {
t = "d";
}`,
		},
		{
			name:     "Quote char into a string",
			input:    "char a = 'x';\nString s = ''', t = a;",
			wantKind: sjavacerr.TypeMismatch,
			wantLine: 2,
		},
		{
			name:     "Double literal into int",
			input:    "int i = 5.0;",
			wantKind: sjavacerr.TypeMismatch,
			wantLine: 1,
		},
		{
			name:     "Variable of another type",
			input:    "int i = 1;\ndouble d = i;",
			wantKind: sjavacerr.TypeMismatch,
			wantLine: 2,
		},
		{
			name:     "Unknown variable in initializer",
			input:    "int x = y;",
			wantKind: sjavacerr.TypeUnknownIdentifier,
			wantLine: 1,
		},
		{
			name:     "Self reference in declaration",
			input:    "int x = x;",
			wantKind: sjavacerr.TypeUnknownIdentifier,
			wantLine: 1,
		},
		{
			name: "Self reference resolves to the outer variable",
			input: `int x = 1;
void f() {
int x = x;
}`,
		},
		{
			name:     "Uninitialized global read at global level",
			input:    "int x;\nint y = x;",
			wantKind: sjavacerr.TypeUninitializedUse,
			wantLine: 2,
		},
		{
			name:     "Redeclared global",
			input:    "int x;\ndouble x;",
			wantKind: sjavacerr.TypeRedeclaration,
			wantLine: 2,
		},
		{
			name:     "Duplicate method",
			input:    "void f() {\n}\nvoid f(int a) {\n}",
			wantKind: sjavacerr.TypeRedeclaration,
			wantLine: 3,
		},
		{
			name:     "Duplicate parameter",
			input:    "void f(int a, double a) {\n}",
			wantKind: sjavacerr.TypeRedeclaration,
			wantLine: 1,
		},
		{
			name:     "Local redeclares a parameter",
			input:    "void f(int a) {\nint a;\n}",
			wantKind: sjavacerr.TypeRedeclaration,
			wantLine: 2,
		},
		{
			name: "Global initialization in a body does not leak",
			input: `int g;
void a() {
g = 1;
int y = g;
}
void b() {
int z = g;
}`,
			wantKind: sjavacerr.TypeUninitializedUse,
			wantLine: 7,
		},
		{
			name: "Global assigned at global level after the methods",
			input: `int g;
void b() {
int z = g;
}
g = 3;`,
		},
		{
			name: "Global declared after the method that uses it",
			input: `void b() {
double z = g;
}
double g = 1.5;`,
		},
		{
			name: "Shadowing ends with the block",
			input: `void f() {
int a = 1;
if (true) {
boolean a = true;
while (a) {
}
}
int b = a;
}`,
		},
		{
			name: "Block local is gone after the block",
			input: `void f() {
if (true) {
int inner = 1;
}
inner = 2;
}`,
			wantKind: sjavacerr.TypeUnknownIdentifier,
			wantLine: 5,
		},
		{
			name:     "Final without value",
			input:    "final int c;",
			wantKind: sjavacerr.TypeSemanticRule,
			wantLine: 1,
		},
		{
			name:     "Assignment to a final global",
			input:    "final int c = 1;\nvoid f() {\nc = 2;\n}",
			wantKind: sjavacerr.TypeSemanticRule,
			wantLine: 3,
		},
		{
			name:     "Assignment to a final parameter",
			input:    "void f(final int p) {\np = 2;\n}",
			wantKind: sjavacerr.TypeSemanticRule,
			wantLine: 2,
		},
		{
			name:     "Nested method declaration",
			input:    "void f() {\nvoid g() {\n}\n}",
			wantKind: sjavacerr.TypeSemanticRule,
			wantLine: 2,
		},
		{
			name:     "Return at global level",
			input:    "int a;\nreturn;",
			wantKind: sjavacerr.TypeSemanticRule,
			wantLine: 2,
		},
		{
			name:     "Call at global level",
			input:    "void f() {\n}\nf();",
			wantKind: sjavacerr.TypeSemanticRule,
			wantLine: 3,
		},
		{
			name:     "Condition at global level",
			input:    "if (true) {\n}",
			wantKind: sjavacerr.TypeSemanticRule,
			wantLine: 1,
		},
		{
			name: "Statements after return",
			input: `void f() {
return;
int a = 1;
return;
}`,
		},
		{
			name:     "Unrecognized line in a body",
			input:    "void f() {\nint a = 1;\na++;\n}",
			wantKind: sjavacerr.TypeSyntax,
			wantLine: 3,
		},
		{
			name:     "Unknown method",
			input:    "void f() {\nh();\n}",
			wantKind: sjavacerr.TypeUnknownIdentifier,
			wantLine: 2,
		},
		{
			name:     "Wrong arity",
			input:    "void f(int a) {\n}\nvoid g() {\nf();\n}",
			wantKind: sjavacerr.TypeSemanticRule,
			wantLine: 4,
		},
		{
			name:     "Uninitialized variable as argument",
			input:    "void f(int a) {\n}\nvoid g() {\nint x;\nf(x);\n}",
			wantKind: sjavacerr.TypeUninitializedUse,
			wantLine: 5,
		},
		{
			name:     "Uninitialized variable in condition",
			input:    "void f() {\nboolean b;\nwhile (b) {\n}\n}",
			wantKind: sjavacerr.TypeUninitializedUse,
			wantLine: 3,
		},
		{
			name:     "String in condition",
			input:    "void f(String s) {\nif (s || true) {\n}\n}",
			wantKind: sjavacerr.TypeMismatch,
			wantLine: 2,
		},
		{
			name: "Compound condition over parameters",
			input: `void f(int a, double b, boolean c) {
if (a && b || c) {
if (-1.5 || false) {
}
}
}`,
		},
		{
			name:     "Empty condition",
			input:    "void f() {\nif () {\n}\n}",
			wantKind: sjavacerr.TypeSyntax,
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := compile(t, tt.input, validator.DefaultOptions())
			if tt.wantKind == sjavacerr.TypeUnknown {
				require.NoError(t, err)
				assert.Equal(t, sjava.Legal, verdict)
				return
			}
			require.Error(t, err)
			assert.Equal(t, sjava.Invalid, verdict)
			assert.Equal(t, tt.wantKind, sjavacerr.KindOf(err), "error: %v", err)
			assert.Equal(t, tt.wantLine, sjavacerr.LineOf(err), "error: %v", err)
		})
	}
}

func TestPermissiveCallArguments(t *testing.T) {
	code := "void f(int a) {\n}\nvoid g() {\nint x;\nf(x);\n}"

	verdict, err := compile(t, code, validator.Options{StrictCallArguments: false})
	require.NoError(t, err)
	assert.Equal(t, sjava.Legal, verdict)

	// type checking still applies
	code = "void f(int a) {\n}\nvoid g() {\ndouble x;\nf(x);\n}"
	_, err = compile(t, code, validator.Options{StrictCallArguments: false})
	assert.Equal(t, sjavacerr.TypeMismatch, sjavacerr.KindOf(err))
}

func TestAnalyzerState(t *testing.T) {
	a := analyzer.NewAnalyzer(validator.DefaultOptions(), nil)
	src := source.FromString(`int g;
final double pi = 3.14;
void f(int a, final String s) {
g = a;
}
void h() {
}`)
	_, err := sjava.NewCompiler(a).Compile(src)
	require.NoError(t, err)

	tbl := a.Table()
	assert.Equal(t, 0, tbl.Depth())
	assert.Equal(t, []string{"f", "h"}, tbl.Methods().Names())

	m, ok := tbl.Method("f")
	require.True(t, ok)
	require.Equal(t, 2, m.Arity())
	assert.Equal(t, sjava.Int, m.Params[0].Type)
	assert.True(t, m.Params[1].Final)

	g, _, ok := tbl.Lookup("g")
	require.True(t, ok)
	assert.False(t, g.Initialized, "body initialization must be discarded on method exit")

	pi, _, ok := tbl.Lookup("pi")
	require.True(t, ok)
	assert.True(t, pi.Initialized)
	assert.True(t, pi.Final)
}
