package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
)

type PolicyItem struct {
	ID        string `dynamodbav:"id"`
	Number    string `dynamodbav:"number"`
	VehicleID string `dynamodbav:"vehicle_id"`
	StartDate string `dynamodbav:"start_date"`
	EndDate   string `dynamodbav:"end_date"`
	Cost      string `dynamodbav:"cost"`
	Status    string `dynamodbav:"status"`
	Notes     string `dynamodbav:"notes,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
}

func (i PolicyItem) ToCore() core.Policy {
	startDate, _ := time.Parse(time.RFC3339, i.StartDate)
	endDate, _ := time.Parse(time.RFC3339, i.EndDate)
	createdAt, _ := time.Parse(time.RFC3339, i.CreatedAt)
	cost, _ := decimal.NewFromString(i.Cost)
	return core.Policy{
		ID:        i.ID,
		Number:    core.PolicyNumber(i.Number),
		VehicleID: i.VehicleID,
		StartDate: startDate,
		EndDate:   endDate,
		Cost:      cost,
		Status:    core.StoredStatus(i.Status),
		Notes:     i.Notes,
		CreatedAt: createdAt,
	}
}

func policyItemFromCore(p core.Policy) PolicyItem {
	return PolicyItem{
		ID:        p.ID,
		Number:    string(p.Number),
		VehicleID: p.VehicleID,
		StartDate: p.StartDate.Format(time.RFC3339),
		EndDate:   p.EndDate.Format(time.RFC3339),
		Cost:      p.Cost.String(),
		Status:    string(p.Status),
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

type PolicyRepo struct {
	client *dynamodb.Client
}

func NewPolicyRepo(client *dynamodb.Client) *PolicyRepo {
	return &PolicyRepo{client: client}
}

func (r *PolicyRepo) Create(ctx context.Context, policy core.Policy) error {
	item := policyItemFromCore(policy)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("policies.marshal: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("policies.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TablePolicies),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrPolicyExists
		}
		return fmt.Errorf("policies.putItem: %w", err)
	}

	return nil
}

func (r *PolicyRepo) Get(ctx context.Context, id string) (core.Policy, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TablePolicies),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return core.Policy{}, fmt.Errorf("policies.getItem: %w", err)
	}

	if out.Item == nil {
		return core.Policy{}, core.ErrPolicyNotFound
	}

	var item PolicyItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.Policy{}, fmt.Errorf("policies.unmarshal: %w", err)
	}

	return item.ToCore(), nil
}

func (r *PolicyRepo) GetByNumber(ctx context.Context, number core.PolicyNumber) (core.Policy, error) {
	out, err := r.queryByNumber(ctx, number)
	if err != nil {
		return core.Policy{}, err
	}

	if len(out.Items) == 0 {
		return core.Policy{}, core.ErrPolicyNotFound
	}

	var item PolicyItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return core.Policy{}, fmt.Errorf("policies.unmarshal: %w", err)
	}

	return item.ToCore(), nil
}

func (r *PolicyRepo) NumberExists(ctx context.Context, number core.PolicyNumber) (bool, error) {
	out, err := r.queryByNumber(ctx, number)
	if err != nil {
		return false, err
	}
	return len(out.Items) > 0, nil
}

func (r *PolicyRepo) queryByNumber(ctx context.Context, number core.PolicyNumber) (*dynamodb.QueryOutput, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TablePolicies),
		IndexName:              aws.String(GSIPoliciesNumber),
		KeyConditionExpression: aws.String("#number = :number"),
		ExpressionAttributeNames: map[string]string{
			"#number": "number",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":number": &types.AttributeValueMemberS{Value: string(number)},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("policies.query: %w", err)
	}
	return out, nil
}

func (r *PolicyRepo) Update(ctx context.Context, policy core.Policy) error {
	item := policyItemFromCore(policy)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("policies.marshal: %w", err)
	}

	cond := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("policies.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TablePolicies),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrPolicyNotFound
		}
		return fmt.Errorf("policies.putItem: %w", err)
	}

	return nil
}

func (r *PolicyRepo) List(ctx context.Context) ([]core.Policy, error) {
	// Scan with client-side sorting; fine at back-office scale. For large
	// datasets a created_at GSI would be the way.
	return r.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(TablePolicies)})
}

func (r *PolicyRepo) ListByVehicle(ctx context.Context, vehicleID string) ([]core.Policy, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TablePolicies),
		IndexName:              aws.String(GSIPoliciesVehicleID),
		KeyConditionExpression: aws.String("vehicle_id = :vehicle_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":vehicle_id": &types.AttributeValueMemberS{Value: vehicleID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("policies.query: %w", err)
	}

	return unmarshalPolicies(out.Items)
}

// FindExpiring returns active-in-store policies whose end date falls inside
// (from, to). Used by the expiry scan worker.
func (r *PolicyRepo) FindExpiring(ctx context.Context, from, to time.Time) ([]core.Policy, error) {
	filterExpr := expression.Name("status").Equal(expression.Value(string(core.StoredStatusActive))).
		And(expression.Name("end_date").GreaterThan(expression.Value(from.Format(time.RFC3339)))).
		And(expression.Name("end_date").LessThan(expression.Value(to.Format(time.RFC3339))))

	expr, err := expression.NewBuilder().WithFilter(filterExpr).Build()
	if err != nil {
		return nil, fmt.Errorf("policies.buildExpr: %w", err)
	}

	return r.scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(TablePolicies),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

func (r *PolicyRepo) scan(ctx context.Context, input *dynamodb.ScanInput) ([]core.Policy, error) {
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("policies.scan: %w", err)
	}

	policies, err := unmarshalPolicies(out.Items)
	if err != nil {
		return nil, err
	}

	sort.Slice(policies, func(i, j int) bool {
		return policies[i].CreatedAt.After(policies[j].CreatedAt)
	})

	return policies, nil
}

func unmarshalPolicies(avs []map[string]types.AttributeValue) ([]core.Policy, error) {
	var items []PolicyItem
	if err := attributevalue.UnmarshalListOfMaps(avs, &items); err != nil {
		return nil, fmt.Errorf("policies.unmarshal: %w", err)
	}

	policies := make([]core.Policy, len(items))
	for i, item := range items {
		policies[i] = item.ToCore()
	}
	return policies, nil
}
