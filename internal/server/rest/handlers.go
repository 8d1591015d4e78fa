package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func (s *HTTPServer) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to TaskMaster API"})
}

func (s *HTTPServer) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	s.issueToken(c, req.Email, req.Password)
}

func (s *HTTPServer) loginForm(c *gin.Context) {
	var req loginFormRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		writeValidationError(c, err)
		return
	}

	s.issueToken(c, req.Username, req.Password)
}

func (s *HTTPServer) issueToken(c *gin.Context, email, password string) {
	token, err := s.users.Login(c.Request.Context(), email, password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token.AccessToken, TokenType: token.TokenType})
}

func (s *HTTPServer) me(c *gin.Context) {
	c.JSON(http.StatusOK, newUserResponse(currentUser(c)))
}

func (s *HTTPServer) createTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUser(c), req.input())
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (s *HTTPServer) listTasks(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeValidationError(c, err)
		return
	}

	list, err := s.tasks.List(c.Request.Context(), currentUser(c), q.Skip, q.Limit)
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := make([]taskResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, newTaskResponse(t))
	}

	c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) getTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *HTTPServer) updateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), currentUser(c), c.Param("id"), req.input())
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *HTTPServer) deleteTask(c *gin.Context) {
	if err := s.tasks.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
