package routes

import (
	"github.com/gin-gonic/gin"

	"inventory/controllers"
	"inventory/middleware"
)

func InitializeRoutes(router *gin.Engine) {
	router.Static("/uploads", "./uploads")

	router.POST("/api/auth/register", controllers.Register)
	router.POST("/api/auth/login", controllers.Login)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/auth/me", controllers.Me)

		api.GET("/products", controllers.GetAllProducts)
		api.POST("/products", controllers.CreateProduct)
		api.GET("/products/:id", controllers.GetProduct)
		api.PUT("/products/:id", controllers.UpdateProduct)
		api.DELETE("/products/:id", controllers.DeleteProduct)
		api.GET("/low-stock", controllers.GetLowStockProducts)

		api.GET("/sales", controllers.GetAllSales)
		api.GET("/sales/recent", controllers.GetRecentSales)
		api.POST("/sales", controllers.CreateSale)
		api.PUT("/sales/:id/pay", controllers.PaySale)
		api.POST("/sales/delete", controllers.CancelSale)

		api.GET("/customers", controllers.GetAllCustomers)
		api.POST("/customers", controllers.CreateCustomer)
		api.PUT("/customers/:id", controllers.UpdateCustomer)
		api.POST("/customers/delete", controllers.DeleteCustomer)

		api.GET("/employees", controllers.GetAllEmployees)
		api.POST("/employees", controllers.CreateEmployee)
		api.PUT("/employees/:id", controllers.UpdateEmployee)
		api.POST("/employees/delete", controllers.DeleteEmployee)

		api.GET("/salaries", controllers.GetAllSalaries)
		api.POST("/salaries", controllers.CreateSalary)
		api.PUT("/salaries/:id", controllers.UpdateSalary)
		api.POST("/salaries/delete", controllers.DeleteSalary)

		api.GET("/borrows", controllers.GetAllBorrows)
		api.POST("/borrows", controllers.CreateBorrow)
		api.PUT("/borrows/:id", controllers.UpdateBorrow)
		api.PATCH("/borrows/:id/return", controllers.MarkBorrowReturned)
		api.PATCH("/borrows/:id/partial-payment", controllers.ApplyPartialPayment)
		api.DELETE("/borrows/:id", controllers.DeleteBorrow)

		api.GET("/expend", controllers.GetAllExpenses)
		api.POST("/expend", controllers.CreateExpense)
		api.PUT("/expend/:id", controllers.UpdateExpense)
		api.POST("/expend/delete", controllers.DeleteExpense)

		api.GET("/stats", controllers.GetStats)
		api.GET("/statistic/:year/:month", controllers.GetMonthlyStatistic)
	}
}
