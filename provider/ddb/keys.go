/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entitymap/errors"
)

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros fills the templates of indexMap, e.g. "USER#{ID}", with the scalar
// attributes of item. Templates referencing a missing or non-scalar attribute are
// left out of the result and their names returned as incomplete.
func expandMacros(indexMap map[string]string, item map[string]types.AttributeValue) (map[string]string, []string) {
	res := make(map[string]string, len(indexMap))
	var incomplete []string

	for fieldName, template := range indexMap {
		complete := true
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")

			switch tv := item[key].(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			case *types.AttributeValueMemberB:
				return base64.StdEncoding.EncodeToString(tv.Value)
			default:
				complete = false
				return ""
			}
		})
		if !complete {
			incomplete = append(incomplete, fieldName)
			continue
		}
		res[fieldName] = expanded
	}

	sort.Strings(incomplete)
	return res, incomplete
}

// expandStringKey replaces every macro of the indexMap templates with key.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds the table key from the expanded PK and SK templates.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, errors.NewInvalidArgumentError("key", "expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// buildUpdateExpression turns attribute->value pairs into a SET expression with
// its placeholder maps. Attributes are numbered in sorted order.
func buildUpdateExpression(updates map[string]types.AttributeValue) (string,
	map[string]string,
	map[string]types.AttributeValue,
	error) {

	if len(updates) == 0 {
		return "", nil, nil, errors.NewInvalidArgumentError("updates", "no updates provided")
	}

	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	setClauses := make([]string, 0, len(updates))
	exprAttrNames := make(map[string]string, len(updates))
	exprAttrValues := make(map[string]types.AttributeValue, len(updates))

	for i, field := range fields {
		placeholderName := fmt.Sprintf("#f%d", i)
		placeholderValue := fmt.Sprintf(":v%d", i)

		setClauses = append(setClauses, placeholderName+" = "+placeholderValue)
		exprAttrNames[placeholderName] = field
		exprAttrValues[placeholderValue] = updates[field]
	}

	return "SET " + strings.Join(setClauses, ", "), exprAttrNames, exprAttrValues, nil
}
