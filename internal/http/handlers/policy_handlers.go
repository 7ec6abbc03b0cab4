package handlers

import (
	"net/http"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/gin-gonic/gin"
)

type PolicyHandlers struct{ svc domain.PolicyService }

// NewPolicyHandlers creates the policy administration handlers
func NewPolicyHandlers(svc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{svc: svc}
}

type policyReq struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

func (h *PolicyHandlers) List(c *gin.Context) {
	policies, err := h.svc.GetPolicies()
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]policyReq, 0, len(policies))
	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		out = append(out, policyReq{Role: p[0], Resource: p[1], Action: p[2]})
	}
	c.JSON(http.StatusOK, out)
}

func (h *PolicyHandlers) Add(c *gin.Context) {
	var r policyReq
	if !bindJSON(c, &r) {
		return
	}
	if err := h.svc.AddPolicy(r.Role, r.Resource, r.Action); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r policyReq
	if !bindJSON(c, &r) {
		return
	}
	if err := h.svc.RemovePolicy(r.Role, r.Resource, r.Action); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
