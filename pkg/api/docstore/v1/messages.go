package docstorev1

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Имена полей сообщений.
const (
	FieldCollection = "collection"
	FieldID         = "id"
	FieldFields     = "fields"
	FieldDocuments  = "documents"
)

// Ошибки разбора сообщений.
var (
	ErrNilMessage       = errors.New("message is nil")
	ErrFieldMissing     = errors.New("required field is missing")
	ErrFieldWrongType   = errors.New("field has unexpected type")
	ErrDocumentsInvalid = errors.New("documents payload is invalid")
)

// Request - разобранный запрос к сервису документов.
type Request struct {
	Collection string
	ID         string
	Fields     map[string]any
}

// Document - документ в ответе ListDocuments.
type Document struct {
	ID     string
	Fields map[string]any
}

// NewListDocumentsRequest формирует запрос ListDocuments.
func NewListDocumentsRequest(collection string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{FieldCollection: collection})
}

// NewCreateDocumentRequest формирует запрос CreateDocument.
func NewCreateDocumentRequest(collection string, fields map[string]any) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		FieldCollection: collection,
		FieldFields:     fields,
	})
}

// NewUpdateDocumentRequest формирует запрос UpdateDocument.
func NewUpdateDocumentRequest(collection, id string, fields map[string]any) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		FieldCollection: collection,
		FieldID:         id,
		FieldFields:     fields,
	})
}

// NewDeleteDocumentRequest формирует запрос DeleteDocument.
func NewDeleteDocumentRequest(collection, id string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		FieldCollection: collection,
		FieldID:         id,
	})
}

// ParseRequest разбирает запрос. Отсутствующие поля остаются нулевыми,
// проверку обязательности выполняет вызывающая сторона.
func ParseRequest(msg *structpb.Struct) (Request, error) {
	if msg == nil {
		return Request{}, ErrNilMessage
	}

	var req Request
	fields := msg.GetFields()

	if v, ok := fields[FieldCollection]; ok {
		s, isString := v.GetKind().(*structpb.Value_StringValue)
		if !isString {
			return Request{}, fmt.Errorf("%s: %w", FieldCollection, ErrFieldWrongType)
		}
		req.Collection = s.StringValue
	}

	if v, ok := fields[FieldID]; ok {
		s, isString := v.GetKind().(*structpb.Value_StringValue)
		if !isString {
			return Request{}, fmt.Errorf("%s: %w", FieldID, ErrFieldWrongType)
		}
		req.ID = s.StringValue
	}

	if v, ok := fields[FieldFields]; ok {
		st := v.GetStructValue()
		if st == nil {
			return Request{}, fmt.Errorf("%s: %w", FieldFields, ErrFieldWrongType)
		}
		req.Fields = st.AsMap()
	}

	return req, nil
}

// EncodeDocuments упаковывает документы в ответ ListDocuments с сохранением порядка.
func EncodeDocuments(docs []Document) (*structpb.Struct, error) {
	items := make([]any, 0, len(docs))
	for _, doc := range docs {
		fields := doc.Fields
		if fields == nil {
			fields = map[string]any{}
		}
		items = append(items, map[string]any{
			FieldID:     doc.ID,
			FieldFields: fields,
		})
	}

	return structpb.NewStruct(map[string]any{FieldDocuments: items})
}

// DecodeDocuments распаковывает ответ ListDocuments.
func DecodeDocuments(msg *structpb.Struct) ([]Document, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}

	value, ok := msg.GetFields()[FieldDocuments]
	if !ok {
		return []Document{}, nil
	}

	list := value.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%s: %w", FieldDocuments, ErrDocumentsInvalid)
	}

	docs := make([]Document, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		st := item.GetStructValue()
		if st == nil {
			return nil, fmt.Errorf("document %d: %w", i, ErrDocumentsInvalid)
		}

		req, err := ParseRequest(st)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if req.ID == "" {
			return nil, fmt.Errorf("document %d: %s: %w", i, FieldID, ErrFieldMissing)
		}
		if req.Fields == nil {
			req.Fields = map[string]any{}
		}

		docs = append(docs, Document{ID: req.ID, Fields: req.Fields})
	}

	return docs, nil
}

// RequestIDMetadataKey - ключ метаданных с идентификатором запроса.
const RequestIDMetadataKey = "x-request-id"
