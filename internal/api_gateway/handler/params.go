package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pettycash-ledger/internal/domain/ledger"
)

func monthParam(c *gin.Context) (ledger.MonthKey, error) {
	month, err := ledger.ParseMonthKey(c.Param("month"))
	if err != nil {
		return ledger.MonthKey{}, fmt.Errorf("month must use the YYYY-MM format")
	}
	return month, nil
}

func transactionIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("transaction id must be a positive integer")
	}
	return id, nil
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a UUID", name)
	}
	return id, nil
}
