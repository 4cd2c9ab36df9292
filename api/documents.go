package api

// Operation documents of the news API.

const userFields = `
      id
      name
      email
      role
      createdAt`

const newsSummaryFields = `
        id
        title
        summary
        status
        publishDate
        createdAt
        author {
          id
          name
        }
        category {
          id
          name
        }`

const loginMutation = `
  mutation Login($input: LoginInput!) {
    login(input: $input) {
      token
      user {` + userFields + `
      }
    }
  }`

const registerUserMutation = `
  mutation RegisterUser($input: RegisterUserInput!) {
    registerUser(input: $input) {
      token
      user {` + userFields + `
        registrationSource
      }
    }
  }`

const updateUserMutation = `
  mutation UpdateUser($id: ID!, $input: UpdateUserInput!) {
    updateUser(id: $id, input: $input) {` + userFields + `
      updatedAt
    }
  }`

const createNewsMutation = `
  mutation CreateNews($input: CreateNewsInput!) {
    createNews(input: $input) {
      id
      title
      content
      summary
      slug
      status
      publishDate
      createdAt
      tags
      author {
        id
        name
      }
      category {
        id
        name
      }
    }
  }`

const updateNewsMutation = `
  mutation UpdateNews($id: ID!, $input: UpdateNewsInput!) {
    updateNews(id: $id, input: $input) {
      id
      title
      content
      summary
      slug
      status
      publishDate
      updatedAt
      tags
      author {
        id
        name
      }
      category {
        id
        name
      }
    }
  }`

const deleteNewsMutation = `
  mutation DeleteNews($id: ID!) {
    deleteNews(id: $id) {
      id
    }
  }`

const newsListQuery = `
  query GetNewsList($limit: Int!, $offset: Int!, $filter: NewsFilterInput, $sort: NewsSortInput!) {
    newsList(limit: $limit, offset: $offset, filter: $filter, sort: $sort) {
      news {` + newsSummaryFields + `
      }
      total
      hasMore
    }
  }`

const newsByIDQuery = `
  query GetNewsItem($id: ID!) {
    getNewsById(id: $id) {
      id
      title
      content
      summary
      slug
      status
      publishDate
      createdAt
      updatedAt
      tags
      images {
        url
        isMain
        caption
        altText
        credit
      }
      author {
        id
        name
      }
      category {
        id
        name
      }
    }
  }`

const categoriesQuery = `
  query Categories {
    categories {
      id
      name
      slug
    }
  }`

const deleteCloudinaryImageMutation = `
  mutation DeleteCloudinaryImage($url: String!) {
    deleteCloudinaryImage(url: $url) {
      success
      message
    }
  }`
