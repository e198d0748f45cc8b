package classify_test

import (
	"testing"

	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/internal/sjava/classify"
	"martianoff/sjavac/sjavacerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKinds(t *testing.T) {
	tests := []struct {
		name string
		line string
		want classify.Kind
	}{
		{"empty", "", classify.KindSkip},
		{"comment", "// int x = 5;", classify.KindSkip},
		{"close scope", "}", classify.KindCloseScope},
		{"declaration", "int x;", classify.KindDeclaration},
		{"final declaration", "final double d = 1.5;", classify.KindDeclaration},
		{"multi declaration", "String a, b = \"hi\", c;", classify.KindDeclaration},
		{"method declaration", "void foo(int a, final String b) {", classify.KindMethodDeclaration},
		{"method declaration no params", "void foo() {", classify.KindMethodDeclaration},
		{"if block", "if (a && true) {", classify.KindBlock},
		{"while block", "while(b){", classify.KindBlock},
		{"assignment", "x = 5;", classify.KindAssignment},
		{"multi assignment", "x = 5, y = x;", classify.KindAssignment},
		{"method call", "foo(1, \"a\");", classify.KindMethodCall},
		{"method call no args", "foo();", classify.KindMethodCall},
		{"return", "return;", classify.KindReturn},
		{"return spaced", "return ;", classify.KindReturn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := classify.Classify(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, line.Kind)
			assert.Equal(t, tt.line, line.Text)
		})
	}
}

func TestClassifyRejects(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing semicolon", "int x = 5"},
		{"unknown type", "float x;"},
		{"return value", "return 5;"},
		{"non void method", "int foo() {"},
		{"empty argument", "foo(1,,2);"},
		{"keyword call", "if (x);"},
		{"open brace alone", "{"},
		{"final without type", "final x = 5;"},
		{"empty initializer", "int x = ;"},
		{"closing with junk", "} else {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classify.Classify(tt.line)
			require.Error(t, err)
			assert.Equal(t, sjavacerr.TypeSyntax, sjavacerr.KindOf(err))
		})
	}
}

func TestClassifyDeclarationFields(t *testing.T) {
	line, err := classify.Classify(`final String a = "x, y", b;`)
	require.NoError(t, err)

	assert.True(t, line.Final)
	assert.Equal(t, "String", line.TypeName)
	assert.Equal(t, []classify.Binding{
		{Name: "a", Value: `"x, y"`, HasValue: true},
		{Name: "b"},
	}, line.Bindings)
}

func TestClassifyMethodFields(t *testing.T) {
	decl, err := classify.Classify("void run ( int a , char c ) {")
	require.NoError(t, err)
	assert.Equal(t, "run", decl.Name)
	assert.Equal(t, "int a , char c", decl.Params)

	call, err := classify.Classify("run(5, ',');")
	require.NoError(t, err)
	assert.Equal(t, "run", call.Name)
	assert.Equal(t, []string{"5", "','"}, call.Args)

	empty, err := classify.Classify("run();")
	require.NoError(t, err)
	assert.Empty(t, empty.Args)
}

func TestClassifyBlockFields(t *testing.T) {
	line, err := classify.Classify("while ( a || 5 ) {")
	require.NoError(t, err)
	assert.Equal(t, "while", line.Keyword)
	assert.Equal(t, "a || 5", line.Guard)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"Plain names", "a, b = 1 ,c", []string{"a", "b = 1", "c"}},
		{"Comma inside literals", `"a,b", 'c'`, []string{`"a,b"`, "'c'"}},
		{"Comma char", "x = ',', y", []string{"x = ','", "y"}},
		{"Quote char", "a = ''', b = 'x'", []string{"a = '''", "b = 'x'"}},
		{"Quote char argument", "''', 5", []string{"'''", "5"}},
		{"Embedded string quote", `s = "a"b", t = "c"`, []string{`s = "a"b"`, `t = "c"`}},
		{"Quote before spaced comma", `"a" , 'b'`, []string{`"a"`, "'b'"}},
		{"Empty", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.SplitList(tt.input))
		})
	}
}

func TestLiteralType(t *testing.T) {
	tests := []struct {
		tok  string
		want sjava.Type
	}{
		{"5", sjava.Int},
		{"-12", sjava.Int},
		{"1.5", sjava.Double},
		{"-.5", sjava.Double},
		{"3.", sjava.Double},
		{"+3", sjava.Double},
		{"true", sjava.Boolean},
		{"false", sjava.Boolean},
		{"'c'", sjava.Char},
		{"' '", sjava.Char},
		{`"hello world"`, sjava.String},
		{`""`, sjava.String},
		{"'ab'", sjava.InvalidType},
		{"x", sjava.InvalidType},
		{"1.2.3", sjava.InvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.LiteralType(tt.tok))
		})
	}
}

func TestAcceptsLiteral(t *testing.T) {
	literals := map[sjava.Type]string{
		sjava.Int:     "5",
		sjava.Double:  "5.5",
		sjava.Boolean: "true",
		sjava.Char:    "'a'",
		sjava.String:  `"a"`,
	}
	// extra accepted pairs beyond the exact match
	widening := map[sjava.Type]map[sjava.Type]bool{
		sjava.Double:  {sjava.Int: true},
		sjava.Boolean: {sjava.Int: true, sjava.Double: true},
	}

	for target := range literals {
		for litType, tok := range literals {
			want := target == litType || widening[target][litType]
			assert.Equal(t, want, classify.AcceptsLiteral(target, tok),
				"%s <- %s", target, tok)
		}
	}
}

func TestNames(t *testing.T) {
	assert.True(t, classify.IsLegalVariableName("x"))
	assert.True(t, classify.IsLegalVariableName("_x"))
	assert.True(t, classify.IsLegalVariableName("a_b1"))
	assert.False(t, classify.IsLegalVariableName("_"))
	assert.False(t, classify.IsLegalVariableName("__x"))
	assert.False(t, classify.IsLegalVariableName("a__b"))
	assert.False(t, classify.IsLegalVariableName("1a"))
	assert.False(t, classify.IsLegalVariableName("int"))
	assert.False(t, classify.IsLegalVariableName("true"))

	assert.True(t, classify.IsLegalMethodName("foo"))
	assert.True(t, classify.IsLegalMethodName("foo_bar"))
	assert.False(t, classify.IsLegalMethodName("_foo"))
	assert.False(t, classify.IsLegalMethodName("foo__bar"))
	assert.False(t, classify.IsLegalMethodName("while"))

	assert.True(t, classify.IsIdentifier("abc"))
	assert.False(t, classify.IsIdentifier("true"))
	assert.False(t, classify.IsIdentifier("5"))
}
