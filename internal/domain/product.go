package domain

// Product — запись каталога. Каталог принадлежит внешней системе, здесь только чтение.
type Product struct {
	ID          string
	Name        string
	Description string
	// ImageURL пустой, если у товара нет изображения.
	ImageURL string
	// Price хранится текстом (десятичное число), как в каталоге.
	Price string
}
