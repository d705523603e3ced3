package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
)

type ClientItem struct {
	ID       string `dynamodbav:"id"`
	FullName string `dynamodbav:"full_name"`
	Passport string `dynamodbav:"passport"`
	Phone    string `dynamodbav:"phone,omitempty"`
	Email    string `dynamodbav:"email,omitempty"`
}

func (i ClientItem) ToCore() core.Client {
	return core.Client{
		ID:       i.ID,
		FullName: i.FullName,
		Passport: i.Passport,
		Phone:    i.Phone,
		Email:    i.Email,
	}
}

func clientItemFromCore(c core.Client) ClientItem {
	return ClientItem{
		ID:       c.ID,
		FullName: c.FullName,
		Passport: c.Passport,
		Phone:    c.Phone,
		Email:    c.Email,
	}
}

type ClientRepo struct {
	client *dynamodb.Client
}

func NewClientRepo(client *dynamodb.Client) *ClientRepo {
	return &ClientRepo{client: client}
}

func (r *ClientRepo) Create(ctx context.Context, c core.Client) error {
	// Passport uniqueness is checked against the GSI first; the conditional
	// put below only guards the primary key.
	taken, err := r.passportTaken(ctx, c.Passport, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return core.ErrClientExists
	}

	av, err := attributevalue.MarshalMap(clientItemFromCore(c))
	if err != nil {
		return fmt.Errorf("clients.marshal: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("clients.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TableClients),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrClientExists
		}
		return fmt.Errorf("clients.putItem: %w", err)
	}

	return nil
}

func (r *ClientRepo) Get(ctx context.Context, id string) (core.Client, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableClients),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return core.Client{}, fmt.Errorf("clients.getItem: %w", err)
	}

	if out.Item == nil {
		return core.Client{}, core.ErrClientNotFound
	}

	var item ClientItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.Client{}, fmt.Errorf("clients.unmarshal: %w", err)
	}

	return item.ToCore(), nil
}

func (r *ClientRepo) Update(ctx context.Context, c core.Client) error {
	taken, err := r.passportTaken(ctx, c.Passport, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return core.ErrClientExists
	}

	av, err := attributevalue.MarshalMap(clientItemFromCore(c))
	if err != nil {
		return fmt.Errorf("clients.marshal: %w", err)
	}

	cond := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("clients.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TableClients),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrClientNotFound
		}
		return fmt.Errorf("clients.putItem: %w", err)
	}

	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	cond := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("clients.buildExpr: %w", err)
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(TableClients),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrClientNotFound
		}
		return fmt.Errorf("clients.deleteItem: %w", err)
	}

	return nil
}

func (r *ClientRepo) List(ctx context.Context) ([]core.Client, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(TableClients),
	})
	if err != nil {
		return nil, fmt.Errorf("clients.scan: %w", err)
	}

	var items []ClientItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("clients.unmarshal: %w", err)
	}

	clients := make([]core.Client, len(items))
	for i, item := range items {
		clients[i] = item.ToCore()
	}

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].FullName < clients[j].FullName
	})

	return clients, nil
}

func (r *ClientRepo) passportTaken(ctx context.Context, passport, selfID string) (bool, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TableClients),
		IndexName:              aws.String(GSIClientsPassport),
		KeyConditionExpression: aws.String("passport = :passport"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":passport": &types.AttributeValueMemberS{Value: passport},
		},
	})
	if err != nil {
		return false, fmt.Errorf("clients.query: %w", err)
	}

	var items []ClientItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return false, fmt.Errorf("clients.unmarshal: %w", err)
	}

	for _, item := range items {
		if item.ID != selfID {
			return true, nil
		}
	}
	return false, nil
}
