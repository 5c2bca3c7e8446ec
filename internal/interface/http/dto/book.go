package dto

// CreateBookRequest HTTP图书入库请求
// total_copies不用required:0是合法值(暂不可借)
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author      string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Category    string `json:"category" binding:"max=100" example:"计算机"`
	ISBN        string `json:"isbn" binding:"required,max=20" example:"9787115428028"`
	TotalCopies int    `json:"total_copies" binding:"min=0,max=100000" example:"3"`
}
