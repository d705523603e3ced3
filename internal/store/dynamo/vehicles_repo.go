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

type VehicleItem struct {
	ID            string `dynamodbav:"id"`
	ClientID      string `dynamodbav:"client_id"`
	Brand         string `dynamodbav:"brand"`
	Model         string `dynamodbav:"model"`
	Year          int    `dynamodbav:"year"`
	VIN           string `dynamodbav:"vin"`
	RegNumber     string `dynamodbav:"reg_number"`
	EnginePowerHP int    `dynamodbav:"engine_power_hp"`
}

func (i VehicleItem) ToCore() core.Vehicle {
	return core.Vehicle{
		ID:            i.ID,
		ClientID:      i.ClientID,
		Brand:         i.Brand,
		Model:         i.Model,
		Year:          i.Year,
		VIN:           i.VIN,
		RegNumber:     i.RegNumber,
		EnginePowerHP: i.EnginePowerHP,
	}
}

func vehicleItemFromCore(v core.Vehicle) VehicleItem {
	return VehicleItem{
		ID:            v.ID,
		ClientID:      v.ClientID,
		Brand:         v.Brand,
		Model:         v.Model,
		Year:          v.Year,
		VIN:           v.VIN,
		RegNumber:     v.RegNumber,
		EnginePowerHP: v.EnginePowerHP,
	}
}

type VehicleRepo struct {
	client *dynamodb.Client
}

func NewVehicleRepo(client *dynamodb.Client) *VehicleRepo {
	return &VehicleRepo{client: client}
}

func (r *VehicleRepo) Create(ctx context.Context, v core.Vehicle) error {
	taken, err := r.identityTaken(ctx, v)
	if err != nil {
		return err
	}
	if taken {
		return core.ErrVehicleExists
	}

	av, err := attributevalue.MarshalMap(vehicleItemFromCore(v))
	if err != nil {
		return fmt.Errorf("vehicles.marshal: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("vehicles.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TableVehicles),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrVehicleExists
		}
		return fmt.Errorf("vehicles.putItem: %w", err)
	}

	return nil
}

func (r *VehicleRepo) Get(ctx context.Context, id string) (core.Vehicle, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableVehicles),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return core.Vehicle{}, fmt.Errorf("vehicles.getItem: %w", err)
	}

	if out.Item == nil {
		return core.Vehicle{}, core.ErrVehicleNotFound
	}

	var item VehicleItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.Vehicle{}, fmt.Errorf("vehicles.unmarshal: %w", err)
	}

	return item.ToCore(), nil
}

func (r *VehicleRepo) Update(ctx context.Context, v core.Vehicle) error {
	taken, err := r.identityTaken(ctx, v)
	if err != nil {
		return err
	}
	if taken {
		return core.ErrVehicleExists
	}

	av, err := attributevalue.MarshalMap(vehicleItemFromCore(v))
	if err != nil {
		return fmt.Errorf("vehicles.marshal: %w", err)
	}

	cond := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("vehicles.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TableVehicles),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrVehicleNotFound
		}
		return fmt.Errorf("vehicles.putItem: %w", err)
	}

	return nil
}

func (r *VehicleRepo) Delete(ctx context.Context, id string) error {
	cond := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("vehicles.buildExpr: %w", err)
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(TableVehicles),
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
			return core.ErrVehicleNotFound
		}
		return fmt.Errorf("vehicles.deleteItem: %w", err)
	}

	return nil
}

func (r *VehicleRepo) List(ctx context.Context) ([]core.Vehicle, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(TableVehicles),
	})
	if err != nil {
		return nil, fmt.Errorf("vehicles.scan: %w", err)
	}

	return sortedVehicles(out.Items)
}

func (r *VehicleRepo) ListByClient(ctx context.Context, clientID string) ([]core.Vehicle, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TableVehicles),
		IndexName:              aws.String(GSIVehiclesClientID),
		KeyConditionExpression: aws.String("client_id = :client_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":client_id": &types.AttributeValueMemberS{Value: clientID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vehicles.query: %w", err)
	}

	return sortedVehicles(out.Items)
}

func sortedVehicles(avs []map[string]types.AttributeValue) ([]core.Vehicle, error) {
	var items []VehicleItem
	if err := attributevalue.UnmarshalListOfMaps(avs, &items); err != nil {
		return nil, fmt.Errorf("vehicles.unmarshal: %w", err)
	}

	vehicles := make([]core.Vehicle, len(items))
	for i, item := range items {
		vehicles[i] = item.ToCore()
	}

	sort.Slice(vehicles, func(i, j int) bool {
		if vehicles[i].Brand != vehicles[j].Brand {
			return vehicles[i].Brand < vehicles[j].Brand
		}
		return vehicles[i].Model < vehicles[j].Model
	})

	return vehicles, nil
}

func (r *VehicleRepo) identityTaken(ctx context.Context, v core.Vehicle) (bool, error) {
	vinTaken, err := r.indexTaken(ctx, GSIVehiclesVIN, "vin", v.VIN, v.ID)
	if err != nil {
		return false, err
	}
	if vinTaken {
		return true, nil
	}
	return r.indexTaken(ctx, GSIVehiclesRegNumber, "reg_number", v.RegNumber, v.ID)
}

func (r *VehicleRepo) indexTaken(ctx context.Context, index, attr, value, selfID string) (bool, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TableVehicles),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(fmt.Sprintf("%s = :v", attr)),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return false, fmt.Errorf("vehicles.query: %w", err)
	}

	var items []VehicleItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return false, fmt.Errorf("vehicles.unmarshal: %w", err)
	}

	for _, item := range items {
		if item.ID != selfID {
			return true, nil
		}
	}
	return false, nil
}
