package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/common"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/entity"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/llm"
)

// processInvoice ingests an invoice document without comparing it: extract,
// normalize, store, return.
func (s *Server) processInvoice(c *gin.Context) {
	raw, err := s.documentPayload(c, llm.KindInvoice)
	if err != nil {
		respondError(c, err)
		return
	}

	invoice := s.parser.Invoice(raw)
	stored, err := s.invoices.Create(c.Request.Context(), invoice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (s *Server) listInvoices(c *gin.Context) {
	list, err := s.invoices.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": list, "count": len(list)})
}

func (s *Server) getInvoice(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	invoice, err := s.invoices.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

type compareRequest struct {
	ContractID string `json:"contract_id"`
	InvoiceID  string `json:"invoice_id"`
}

// compareInvoice reconciles an invoice against a stored contract. Two entry
// points share it: a multipart upload carrying contract_id plus the invoice
// file, and a JSON body referencing an already processed invoice by id.
func (s *Server) compareInvoice(c *gin.Context) {
	var (
		invoice    *entity.Invoice
		contractID uuid.UUID
		err        error
	)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		contractID, err = uuid.Parse(c.PostForm("contract_id"))
		if err != nil {
			respondError(c, fmt.Errorf("%w: malformed contract_id", common.ErrInvalidInput))
			return
		}
		raw, perr := s.extractUpload(c, llm.KindInvoice)
		if perr != nil {
			respondError(c, perr)
			return
		}
		invoice = s.parser.Invoice(raw)
		if invoice, err = s.invoices.Create(c.Request.Context(), invoice); err != nil {
			respondError(c, err)
			return
		}
	} else {
		var req compareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
			return
		}
		contractID, err = uuid.Parse(req.ContractID)
		if err != nil {
			respondError(c, fmt.Errorf("%w: malformed contract_id", common.ErrInvalidInput))
			return
		}
		invoiceID, err := uuid.Parse(req.InvoiceID)
		if err != nil {
			respondError(c, fmt.Errorf("%w: malformed invoice_id", common.ErrInvalidInput))
			return
		}
		if invoice, err = s.invoices.Get(c.Request.Context(), invoiceID); err != nil {
			respondError(c, err)
			return
		}
	}

	contract, err := s.contracts.Get(c.Request.Context(), contractID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := s.engine.Compare(contract, invoice)
	stored, err := s.results.Create(c.Request.Context(), result)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}
