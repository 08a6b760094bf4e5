package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/common"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/llm"
)

// createContract ingests a contract document. Uploads are extracted through
// the LLM; JSON bodies are normalized directly.
func (s *Server) createContract(c *gin.Context) {
	raw, err := s.documentPayload(c, llm.KindContract)
	if err != nil {
		respondError(c, err)
		return
	}

	contract := s.parser.Contract(raw)
	stored, err := s.contracts.Create(c.Request.Context(), contract)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (s *Server) listContracts(c *gin.Context) {
	list, err := s.contracts.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": list, "count": len(list)})
}

func (s *Server) getContract(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	contract, err := s.contracts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (s *Server) deleteContract(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.contracts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listComparisons(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := s.results.ListByContract(c.Request.Context(), id.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comparisons": list, "count": len(list)})
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed id %q", common.ErrInvalidInput, c.Param("id"))
	}
	return id, nil
}
