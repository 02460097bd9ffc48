package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vishnukbarath/sharedtodo/services"

	"github.com/gin-gonic/gin"
)

type TodoController struct {
	Todos   *services.TodoService
	Couples *services.CoupleService
}

func NewTodoController(todos *services.TodoService, couples *services.CoupleService) *TodoController {
	return &TodoController{Todos: todos, Couples: couples}
}

// resolveCouple is the scoping gate: every todo route resolves the
// caller's workspace first and refuses with 400 when there is none.
func (tc *TodoController) resolveCouple(c *gin.Context) (uint, bool) {
	couple, err := tc.Couples.GetUserCouple(c.GetUint("userID"))
	if err != nil {
		if errors.Is(err, services.ErrNotInCouple) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not in a couple"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return 0, false
	}
	return couple.ID, true
}

func todoID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return 0, false
	}
	return uint(id), true
}

func (tc *TodoController) List(c *gin.Context) {
	coupleID, ok := tc.resolveCouple(c)
	if !ok {
		return
	}

	todos, err := tc.Todos.List(coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, todos)
}

func (tc *TodoController) Create(c *gin.Context) {
	coupleID, ok := tc.resolveCouple(c)
	if !ok {
		return
	}

	var input services.TodoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := tc.Todos.Create(coupleID, c.GetUint("userID"), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, todo)
}

func (tc *TodoController) Update(c *gin.Context) {
	coupleID, ok := tc.resolveCouple(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	var input services.TodoUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := tc.Todos.Update(coupleID, c.GetUint("userID"), id, input)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, todo)
}

func (tc *TodoController) Delete(c *gin.Context) {
	coupleID, ok := tc.resolveCouple(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := tc.Todos.Delete(coupleID, id); err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

func (tc *TodoController) AddComment(c *gin.Context) {
	coupleID, ok := tc.resolveCouple(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := tc.Todos.AddComment(coupleID, c.GetUint("userID"), id, input.Content)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}
