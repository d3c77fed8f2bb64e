/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	stderrors "errors"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/mapping"
)

// Client is the connection type the DynamoDB services are keyed by.
type Client = sdk.Client

// Register installs the DynamoDB Setting, Helper and a StatementBuilder reading m
// into m, keyed by *dynamodb.Client. The builder is returned so that index maps
// can be added to it.
func Register(m *mapping.Mappers, force bool, opts ...Option) (*StatementBuilder, error) {
	if m == nil {
		return nil, errors.NewNullArgumentError("mappers")
	}

	b := NewStatementBuilder(m, opts...)
	err := stderrors.Join(
		mapping.AddDbSetting[*sdk.Client](m.DbSetting, Setting{}, force),
		mapping.AddDbHelper[*sdk.Client](m.DbHelper, Helper{}, force),
		mapping.AddStatementBuilder[*sdk.Client](m.StatementBuilder, b, force),
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}
