package parser

// The reference payload, encoded in both formats.
const (
	ExampleJSON = `{"nombre":"Juan","edad":30,"ciudad":"Madrid","hobbies":["lectura","deportes","viajes"],"contacto":{"email":"juan@example.com","telefono":"123456789"}}`
	ExampleTOON = "nombre:Juan|edad:30|ciudad:Madrid|hobbies[lectura,deportes,viajes]|contacto{email:juan@example.com,telefono:123456789}"
)
