package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/paygrid-hq/payroll-engine-go/internal/config"
	appHTTP "github.com/paygrid-hq/payroll-engine-go/internal/handler/http"
	"github.com/paygrid-hq/payroll-engine-go/internal/pkg/database"
	"github.com/paygrid-hq/payroll-engine-go/internal/repository/postgresql"
	payrollService "github.com/paygrid-hq/payroll-engine-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "payroll-engine"),
		slog.String("env", cfg.App.Env),
	)

	payrollRepo := postgresql.NewPayrollRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	loanRepo := postgresql.NewLoanRepository(db)

	payrollSvc := payrollService.NewPayrollService(
		postgresql.TxRunner(db),
		logger,
		payrollRepo,
		employeeRepo,
		timesheetRepo,
		absenceRepo,
		loanRepo,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	router := appHTTP.NewRouter(payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
