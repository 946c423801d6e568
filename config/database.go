package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client             *mongo.Client
	UserCollection     *mongo.Collection
	SessionCollection  *mongo.Collection
	ProductCollection  *mongo.Collection
	SaleCollection     *mongo.Collection
	CustomerCollection *mongo.Collection
	EmployeeCollection *mongo.Collection
	SalaryCollection   *mongo.Collection
	BorrowCollection   *mongo.Collection
	ExpenseCollection  *mongo.Collection
)

func ConnectDatabase() {
	client, err := mongo.NewClient(options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "inventory"
	}

	Client = client
	UserCollection = client.Database(dbName).Collection("users")
	SessionCollection = client.Database(dbName).Collection("sessions")
	ProductCollection = client.Database(dbName).Collection("products")
	SaleCollection = client.Database(dbName).Collection("sales")
	CustomerCollection = client.Database(dbName).Collection("customers")
	EmployeeCollection = client.Database(dbName).Collection("employees")
	SalaryCollection = client.Database(dbName).Collection("salaries")
	BorrowCollection = client.Database(dbName).Collection("borrows")
	ExpenseCollection = client.Database(dbName).Collection("expenses")
	log.Println("Connected to MongoDB")
}
