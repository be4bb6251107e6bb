package transpiler

import (
	"github.com/cwbudde/go-gryphon/internal/ast"
)

// RewriteSwitchPass prepares switches for when-emission. A switch whose
// cases all end by assigning the same target becomes an assignment of a
// when expression; one whose cases all end in returns becomes a returned
// when expression. The case bodies keep only the value in their final
// position; the hoisted statement shape is stored in ConvertsToExpression.
type RewriteSwitchPass struct {
	Walker
}

func NewRewriteSwitchPass(context *Context, scope *FileScope) *RewriteSwitchPass {
	p := &RewriteSwitchPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RewriteSwitchPass) Name() string { return "rewriteSwitch" }

func (p *RewriteSwitchPass) ReplaceSwitchStatement(statement *ast.SwitchStatement) []ast.Statement {
	replaced := p.Walker.ReplaceSwitchStatement(statement)
	if len(replaced) != 1 {
		return replaced
	}
	switchStatement, ok := replaced[0].(*ast.SwitchStatement)
	if !ok || len(switchStatement.Cases) == 0 {
		return replaced
	}

	// Swift cases break implicitly; an explicit trailing break has no
	// place in a when branch.
	for i := range switchStatement.Cases {
		statements := switchStatement.Cases[i].Statements
		if len(statements) == 0 {
			continue
		}
		if _, isBreak := statements[len(statements)-1].(*ast.BreakStatement); isBreak {
			switchStatement.Cases[i].Statements = statements[:len(statements)-1]
		}
	}

	if target, ok := commonAssignmentTarget(switchStatement.Cases); ok {
		for i := range switchStatement.Cases {
			body := switchStatement.Cases[i].Statements
			assignment := body[len(body)-1].(*ast.AssignmentStatement)
			body[len(body)-1] = &ast.ExpressionStatement{Expression: assignment.RightHand}
		}
		switchStatement.ConvertsToExpression = &ast.AssignmentStatement{LeftHand: target}
		return []ast.Statement{switchStatement}
	}

	if allCasesReturn(switchStatement.Cases) {
		for i := range switchStatement.Cases {
			body := switchStatement.Cases[i].Statements
			returnStatement := body[len(body)-1].(*ast.ReturnStatement)
			body[len(body)-1] = &ast.ExpressionStatement{Expression: returnStatement.Expression}
		}
		switchStatement.ConvertsToExpression = &ast.ReturnStatement{}
		return []ast.Statement{switchStatement}
	}

	return []ast.Statement{switchStatement}
}

// commonAssignmentTarget reports the single target every case assigns in
// final position, when there is one.
func commonAssignmentTarget(cases []ast.SwitchCase) (ast.Expression, bool) {
	var target ast.Expression
	var targetName string
	for _, switchCase := range cases {
		if len(switchCase.Statements) == 0 {
			return nil, false
		}
		assignment, ok := switchCase.Statements[len(switchCase.Statements)-1].(*ast.AssignmentStatement)
		if !ok {
			return nil, false
		}
		name := identifierOf(assignment.LeftHand)
		if name == "" {
			return nil, false
		}
		if target == nil {
			target = assignment.LeftHand
			targetName = name
			continue
		}
		if name != targetName {
			return nil, false
		}
	}
	return target, target != nil
}

func allCasesReturn(cases []ast.SwitchCase) bool {
	for _, switchCase := range cases {
		if len(switchCase.Statements) == 0 {
			return false
		}
		returnStatement, ok := switchCase.Statements[len(switchCase.Statements)-1].(*ast.ReturnStatement)
		if !ok || returnStatement.Expression == nil {
			return false
		}
	}
	return true
}

// RewriteGuardsPass turns guard statements into negated ifs: the guard's
// boolean conditions become a single if over the negated conjunction, and
// guard-let bindings become hoisted declarations with a null check.
type RewriteGuardsPass struct {
	Walker
}

func NewRewriteGuardsPass(context *Context, scope *FileScope) *RewriteGuardsPass {
	p := &RewriteGuardsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RewriteGuardsPass) Name() string { return "rewriteGuards" }

func (p *RewriteGuardsPass) ReplaceIfStatement(statement *ast.IfStatement) []ast.Statement {
	if !statement.IsGuard {
		return p.Walker.ReplaceIfStatement(statement)
	}

	elseBody := p.ReplaceStatements(statement.Statements)
	var result []ast.Statement
	var booleanConditions []ast.Expression

	for _, condition := range statement.Conditions {
		if condition.Expression != nil {
			booleanConditions = append(booleanConditions, p.ReplaceExpression(condition.Expression))
			continue
		}
		declaration := p.ReplaceVariableData(*condition.Declaration)
		result = append(result, optionalBindingStatements(&declaration, elseBody, true)...)
	}

	if len(booleanConditions) > 0 {
		negated := &ast.PrefixUnaryExpression{
			Expression:     &ast.ParenthesesExpression{Expression: conjoin(booleanConditions)},
			OperatorSymbol: "!",
			TypeName:       "Bool",
		}
		ifData := ast.IfStatementData{
			Conditions: []ast.IfCondition{{Expression: negated}},
			Statements: elseBody,
		}
		result = append(result, &ast.IfStatement{IfStatementData: ifData})
	}

	return result
}

// conjoin folds several boolean conditions into one with &&.
func conjoin(conditions []ast.Expression) ast.Expression {
	result := conditions[0]
	for _, condition := range conditions[1:] {
		result = &ast.BinaryOperatorExpression{
			LeftExpression:  result,
			RightExpression: condition,
			OperatorSymbol:  "&&",
			TypeName:        "Bool",
		}
	}
	return result
}

// optionalBindingStatements lowers one let binding into a nullable
// declaration plus a null check. Inverted bindings (guards) run the body
// when the value is null; direct bindings produce just the declaration and
// the caller adds the non-null condition.
func optionalBindingStatements(declaration *ast.VariableDeclarationData, body []ast.Statement, inverted bool) []ast.Statement {
	hoisted := *declaration
	if hoisted.TypeName != "" && !ast.IsOptionalType(hoisted.TypeName) {
		hoisted.TypeName += "?"
	}

	operator := "!="
	if inverted {
		operator = "=="
	}
	check := &ast.BinaryOperatorExpression{
		LeftExpression: &ast.DeclarationReferenceExpression{
			Identifier: hoisted.Identifier,
			TypeName:   hoisted.TypeName,
		},
		RightExpression: &ast.NilLiteralExpression{},
		OperatorSymbol:  operator,
		TypeName:        "Bool",
	}

	statements := []ast.Statement{
		&ast.VariableDeclaration{VariableDeclarationData: hoisted},
	}
	if inverted {
		ifData := ast.IfStatementData{
			Conditions: []ast.IfCondition{{Expression: check}},
			Statements: body,
		}
		statements = append(statements, &ast.IfStatement{IfStatementData: ifData})
	}
	return statements
}

// RewriteIfLetPass lowers optional-binding conditions of plain ifs: each
// binding becomes a nullable declaration hoisted before the if, and the
// condition becomes a null check combined with the remaining conditions.
type RewriteIfLetPass struct {
	Walker
}

func NewRewriteIfLetPass(context *Context, scope *FileScope) *RewriteIfLetPass {
	p := &RewriteIfLetPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RewriteIfLetPass) Name() string { return "rewriteIfLet" }

func (p *RewriteIfLetPass) ReplaceIfStatement(statement *ast.IfStatement) []ast.Statement {
	data := p.ReplaceIfData(statement.IfStatementData)
	declarations, converted := p.convertBindings(data)
	return append(declarations, &ast.IfStatement{IfStatementData: converted})
}

// convertBindings hoists every binding of an if chain; nested else-if
// bindings hoist before the outer if so their scope covers the chain.
func (p *RewriteIfLetPass) convertBindings(data ast.IfStatementData) ([]ast.Statement, ast.IfStatementData) {
	var declarations []ast.Statement
	result := data
	result.Conditions = nil

	for _, condition := range data.Conditions {
		if condition.Expression != nil {
			result.Conditions = append(result.Conditions, condition)
			continue
		}
		declaration := *condition.Declaration
		declarations = append(declarations, optionalBindingStatements(&declaration, nil, false)...)

		typeName := declaration.TypeName
		if typeName != "" && !ast.IsOptionalType(typeName) {
			typeName += "?"
		}
		check := &ast.BinaryOperatorExpression{
			LeftExpression: &ast.DeclarationReferenceExpression{
				Identifier: declaration.Identifier,
				TypeName:   typeName,
			},
			RightExpression: &ast.NilLiteralExpression{},
			OperatorSymbol:  "!=",
			TypeName:        "Bool",
		}
		result.Conditions = append(result.Conditions, ast.IfCondition{Expression: check})
	}

	if data.ElseStatement != nil {
		elseDeclarations, elseData := p.convertBindings(*data.ElseStatement)
		declarations = append(declarations, elseDeclarations...)
		result.ElseStatement = &elseData
	}
	return declarations, result
}
